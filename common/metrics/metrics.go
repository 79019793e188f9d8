package metrics

import (
	"net/http"

	"github.com/arl/statsviz"
)

// Serve 运行时监控面板，地址 /debug/statsviz/，阻塞
func Serve(addr string) error {
	mux := http.NewServeMux()
	if err := statsviz.Register(mux); err != nil {
		return err
	}
	return http.ListenAndServe(addr, mux)
}
