package echo_test

import (
	"fmt"

	"github.com/cwbudde/algo-echo/dsp/echo"
)

func ExampleChain() {
	cfg := echo.DefaultChainConfig(0)
	cfg.Head.Time = 0.25
	cfg.Head.DCRejectHz = 0
	cfg.Tail.Mix = 1

	chain, err := echo.New(echo.WithSettings(cfg))
	if err != nil {
		panic(err)
	}

	for n := range 300 {
		in := echo.NewFrame(0, 0)
		if n == 0 {
			in = echo.NewFrame(1, 1)
		}

		if out := chain.Process(1000, in); out.Sample[0] > 0.5 {
			fmt.Println("echo at frame", n)
		}
	}
	// Output: echo at frame 251
}
