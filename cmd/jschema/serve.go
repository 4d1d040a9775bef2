package main

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	gojson "github.com/goccy/go-json"
	"github.com/google/gops/agent"
	"github.com/scott-cotton/cli"

	"github.com/signadot/jsonschema/schema"
)

type ServeConfig struct {
	*MainConfig
	Serve *cli.Command

	Addr string `cli:"name=addr desc='TCP listen address' default=localhost:9127"`
}

func ServeCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &ServeConfig{MainConfig: mainCfg, Addr: "localhost:9127"}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Serve, "serve").
		WithSynopsis("serve [-addr <addr>] <schema>").
		WithDescription("run a validation server: POST instances to /validate").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return serve(cfg, cc, args)
		})
}

type validateResponse struct {
	Valid  bool            `json:"valid"`
	Errors []responseError `json:"errors,omitempty"`
}

type responseError struct {
	Line    int    `json:"line"`
	Col     int    `json:"col"`
	Message string `json:"message"`
}

func serve(cfg *ServeConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Serve.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 1 {
		return fmt.Errorf("%w: serve needs a schema file", cli.ErrUsage)
	}
	s, err := cfg.compileFile(args[0])
	if err != nil {
		return fmt.Errorf("compiling %s: %w", args[0], err)
	}

	// gops agent for runtime diagnostics
	if err := agent.Listen(agent.Options{}); err != nil {
		fmt.Fprintf(cc.Out, "gops agent failed: %v\n", err)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /validate", func(w http.ResponseWriter, r *http.Request) {
		d, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		writeValidation(w, s.ValidateBytes(d))
	})
	fmt.Fprintf(cc.Out, "jschema validating %s on %s\n", args[0], cfg.Addr)
	return http.ListenAndServe(cfg.Addr, mux)
}

func writeValidation(w http.ResponseWriter, verr error) {
	w.Header().Set("Content-Type", "application/json")
	if verr == nil {
		gojson.NewEncoder(w).Encode(validateResponse{Valid: true})
		return
	}
	resp := validateResponse{}
	var ve *schema.ValidationError
	if errors.As(verr, &ve) {
		for _, it := range ve.Errors() {
			line, col := it.Pos.LineCol()
			resp.Errors = append(resp.Errors, responseError{Line: line, Col: col, Message: it.Msg})
		}
	} else {
		resp.Errors = append(resp.Errors, responseError{Line: -1, Col: -1, Message: verr.Error()})
	}
	w.WriteHeader(http.StatusUnprocessableEntity)
	gojson.NewEncoder(w).Encode(resp)
}
