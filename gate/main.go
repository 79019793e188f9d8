package main

import (
	"context"
	"fmt"
	"os"

	"github.com/lihe07/RiichiEnv/common/config"
	"github.com/lihe07/RiichiEnv/common/log"
	"github.com/lihe07/RiichiEnv/common/metrics"
	"github.com/lihe07/RiichiEnv/gate/app"
	"github.com/spf13/cobra"
)

// 加载配置 -> 启动监控 -> 启动 http 网关

var configFile string

var rootCmd = &cobra.Command{
	Use:   "scorer",
	Short: "scorer 立直麻将计分网关",
	Long:  `scorer 立直麻将计分网关，子命令可在本地直接计分`,
	RunE: func(cmd *cobra.Command, args []string) error {
		conf, err := config.InitFixedConfig(configFile)
		if err != nil {
			log.Fatal("文件配置发生错误：%v", err)
		}
		log.InitLog(conf.ID, conf.LogConf.Level)
		log.Info("配置文件: %+v", conf.Redacted())

		if conf.MetricPort > 0 {
			go func() {
				log.Info("启动监控..., URL: http://localhost:%d/debug/statsviz/", conf.MetricPort)
				if err := metrics.Serve(fmt.Sprintf("0.0.0.0:%d", conf.MetricPort)); err != nil {
					log.Error("监控服务退出: %v", err)
				}
			}()
		}

		return app.Run(context.Background())
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "configFile", "", "配置文件，为空时使用默认值和 SCORER_ 环境变量")
	rootCmd.AddCommand(newScoreCmd(), newTableCmd(), newWaitsCmd(), newDecomposeCmd(), newAgariCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Error("error happen: %v", err)
		os.Exit(1)
	}
}
