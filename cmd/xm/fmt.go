package main

import (
	"io"

	"github.com/signadot/xmlmap/encode"
	"github.com/signadot/xmlmap/parse"

	"github.com/scott-cotton/cli"
)

func fmtDocs(cfg *FmtConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Fmt.Parse(cc, args)
	if err != nil {
		return err
	}
	encOpts := cfg.encOpts(cc.Out)
	return eachInput(cc, args, func(_ string, d []byte) error {
		return fmtDoc(cc.Out, d, cfg.parseOpts(), encOpts)
	})
}

func fmtDoc(w io.Writer, d []byte, popts []parse.ParseOption, eopts []encode.EncodeOption) error {
	node, err := parse.Parse(d, popts...)
	if err != nil {
		return err
	}
	if err := encode.Encode(node, w, eopts...); err != nil {
		return err
	}
	if encode.IsWire(eopts...) {
		_, err = io.WriteString(w, "\n")
	}
	return err
}
