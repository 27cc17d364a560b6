package main

import (
	_ "expvar"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"

	"github.com/byxorna/stopover/cmd"
)

var (
	pprofPort = 6060
)

func init() {
	if os.Getenv("STOPOVER_DEBUG") != "" {
		go http.ListenAndServe(fmt.Sprintf(":%d", pprofPort), nil)
	}
}

func main() {
	cmd.Execute()
}
