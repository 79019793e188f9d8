package main

import (
	"encoding/json"
	"fmt"

	"github.com/lihe07/RiichiEnv/common/config"
	"github.com/lihe07/RiichiEnv/game/application/dto"
	"github.com/lihe07/RiichiEnv/game/application/service"
	"github.com/lihe07/RiichiEnv/game/application/service/impl"
	"github.com/spf13/cobra"
)

// localService 本地计分，不使用缓存和数据库，规则来自 --configFile
func localService() (service.ScoreService, error) {
	if configFile != "" {
		if _, err := config.Load(configFile); err != nil {
			return nil, err
		}
	}
	return impl.NewScoreService(nil, nil), nil
}

func printJSON(cmd *cobra.Command, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(b))
	return err
}

func newScoreCmd() *cobra.Command {
	var req dto.ScoreRequest
	cmd := &cobra.Command{
		Use:     "score",
		Short:   "计算一手和牌的番符和点数",
		Example: `  scorer score --hand 123m456p789s111z2z --win 2z --seat E`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := localService()
			if err != nil {
				return err
			}
			resp, err := svc.Score(cmd.Context(), &req)
			if err != nil {
				return err
			}
			return printJSON(cmd, resp)
		},
	}
	f := cmd.Flags()
	f.StringVar(&req.Hand, "hand", "", "门内手牌 (mpsz)")
	f.StringVar(&req.WinTile, "win", "", "和了牌")
	f.StringSliceVar(&req.Melds, "meld", nil, "副露，例如 pon:555z，可重复")
	f.BoolVar(&req.Tsumo, "tsumo", false, "自摸")
	f.BoolVar(&req.Riichi, "riichi", false, "立直")
	f.BoolVar(&req.DoubleRiichi, "double-riichi", false, "两立直")
	f.BoolVar(&req.Ippatsu, "ippatsu", false, "一发")
	f.BoolVar(&req.Haitei, "haitei", false, "海底")
	f.BoolVar(&req.Houtei, "houtei", false, "河底")
	f.BoolVar(&req.Rinshan, "rinshan", false, "岭上开花")
	f.BoolVar(&req.Chankan, "chankan", false, "抢杠")
	f.BoolVar(&req.FirstTurn, "first-turn", false, "天和/地和")
	f.StringVar(&req.RoundWind, "round", "E", "场风")
	f.StringVar(&req.SeatWind, "seat", "E", "自风，东为庄家")
	f.StringSliceVar(&req.DoraIndicators, "dora", nil, "宝牌指示牌")
	f.StringSliceVar(&req.UraIndicators, "ura", nil, "里宝牌指示牌")
	f.IntVar(&req.Honba, "honba", 0, "本场数")
	_ = cmd.MarkFlagRequired("hand")
	_ = cmd.MarkFlagRequired("win")
	return cmd
}

func newTableCmd() *cobra.Command {
	var req dto.TableRequest
	cmd := &cobra.Command{
		Use:   "table",
		Short: "查点数表",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := localService()
			if err != nil {
				return err
			}
			resp, err := svc.Table(cmd.Context(), &req)
			if err != nil {
				return err
			}
			return printJSON(cmd, resp)
		},
	}
	f := cmd.Flags()
	f.IntVar(&req.Han, "han", 1, "番数")
	f.IntVar(&req.Yakuman, "yakuman", 0, "役满倍数，大于 0 时忽略番符")
	f.IntVar(&req.Fu, "fu", 30, "符数")
	f.BoolVar(&req.Dealer, "dealer", false, "庄家")
	f.BoolVar(&req.Tsumo, "tsumo", false, "自摸")
	f.IntVar(&req.Honba, "honba", 0, "本场数")
	return cmd
}

func newWaitsCmd() *cobra.Command {
	var req dto.WaitsRequest
	cmd := &cobra.Command{
		Use:   "waits <hand>",
		Short: "3n+1 张手牌的听牌和进张",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := localService()
			if err != nil {
				return err
			}
			req.Hand = args[0]
			resp, err := svc.Waits(cmd.Context(), &req)
			if err != nil {
				return err
			}
			return printJSON(cmd, resp)
		},
	}
	cmd.Flags().StringVar(&req.Visible, "visible", "", "场上可见的牌 (mpsz)")
	return cmd
}

func newDecomposeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "decompose <hand>",
		Short: "列出 3n+2 张手牌的所有面子拆分",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := localService()
			if err != nil {
				return err
			}
			resp, err := svc.Decompose(cmd.Context(), &dto.HandRequest{Hand: args[0]})
			if err != nil {
				return err
			}
			return printJSON(cmd, resp)
		},
	}
}

func newAgariCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "agari <hand>",
		Short: "判断 3n+2 张手牌是否和了",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := localService()
			if err != nil {
				return err
			}
			resp, err := svc.Agari(cmd.Context(), &dto.HandRequest{Hand: args[0]})
			if err != nil {
				return err
			}
			return printJSON(cmd, resp)
		},
	}
}
