// Command outlook inspects .msg, .pst, and .eml files: it prints the
// item summary, the attachment list, and every parser warning.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"

	outlook "github.com/asalih/go-outlook"
	"github.com/asalih/go-outlook/eml"
	"github.com/asalih/go-outlook/mapi"
	"github.com/asalih/go-outlook/msg"
	"github.com/asalih/go-outlook/pst"
)

func main() {
	var (
		asJSON  = flag.Bool("json", false, "emit machine-readable output")
		toEml   = flag.Bool("eml", false, "convert a .msg input to RFC 2822 on stdout")
		verbose = flag.Bool("v", false, "debug logging")
	)
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] file\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}
	path := flag.Arg(0)

	data, err := os.ReadFile(path)
	if err != nil {
		logger.Error("read input", "path", path, "err", err)
		os.Exit(1)
	}

	file, err := outlook.Open(data)
	if err != nil {
		logger.Error("open container", "path", path, "err", err)
		os.Exit(1)
	}
	logger.Debug("container opened", "format", file.Format, "warnings", len(file.Warnings))

	if *toEml {
		if file.Format != outlook.FormatMsg {
			logger.Error("eml conversion needs a msg input", "format", file.Format)
			os.Exit(1)
		}
		out, err := eml.FromMsg(file.Msg)
		if err != nil {
			logger.Error("convert to eml", "err", err)
			os.Exit(1)
		}
		os.Stdout.Write(out)
		return
	}

	switch file.Format {
	case outlook.FormatMsg:
		printMsg(file.Msg, *asJSON)
	case outlook.FormatPst:
		printPst(file.Pst, *asJSON)
	case outlook.FormatEml:
		printEml(file.Eml, *asJSON)
	}

	printWarnings(file.Warnings, logger)
}

func printMsg(m *msg.Message, asJSON bool) {
	if asJSON {
		emitJSON(map[string]any{
			"format":      "msg",
			"class":       m.MessageClass(),
			"subject":     m.Subject(),
			"recipients":  len(m.Recipients),
			"attachments": len(m.Attachments),
			"properties":  m.Properties.Len(),
		})
		return
	}
	fmt.Printf("format:  msg\n")
	fmt.Printf("class:   %s\n", m.MessageClass())
	fmt.Printf("subject: %s\n", m.Subject())
	for _, r := range m.Recipients {
		fmt.Printf("recipient (%s): %s <%s>\n", r.Type, r.Name, r.Email)
	}
	for _, a := range m.Attachments {
		embedded := ""
		if a.Embedded != nil {
			embedded = " (embedded message)"
		}
		fmt.Printf("attachment: %s [%s] %d bytes%s\n", a.Filename, a.MimeType, len(a.Data), embedded)
	}
}

func printPst(p *pst.PST, asJSON bool) {
	var items, folders, messages int
	p.Walk(func(item *pst.Item, depth int) bool {
		items++
		printWarnings(item.Warnings, slog.Default())
		if item.IsFolder() {
			folders++
		} else {
			messages++
		}
		return true
	})

	if asJSON {
		emitJSON(map[string]any{
			"format":      "pst",
			"version":     p.Header.Version.String(),
			"encryption":  p.Header.EncryptionType,
			"items":       items,
			"folders":     folders,
			"messages":    messages,
			"descriptors": len(p.Descriptors),
		})
		return
	}
	fmt.Printf("format:     pst (%s)\n", p.Header.Version)
	fmt.Printf("encryption: %d\n", p.Header.EncryptionType)
	fmt.Printf("items:      %d (%d folders, %d messages)\n", items, folders, messages)
	p.Walk(func(item *pst.Item, depth int) bool {
		name := item.DisplayName()
		if name == "" {
			name = item.Subject()
		}
		fmt.Printf("%*s%s: %s\n", depth*2, "", item.Kind, name)
		return true
	})
}

func printEml(e *eml.Message, asJSON bool) {
	if asJSON {
		emitJSON(map[string]any{
			"format":      "eml",
			"subject":     e.Subject,
			"from":        e.From,
			"to":          e.To,
			"attachments": len(e.Attachments),
		})
		return
	}
	fmt.Printf("format:  eml\n")
	fmt.Printf("subject: %s\n", e.Subject)
	fmt.Printf("from:    %s\n", e.From)
	for _, to := range e.To {
		fmt.Printf("to:      %s\n", to)
	}
	for _, a := range e.Attachments {
		fmt.Printf("attachment: %s [%s] %d bytes\n", a.Filename, a.MimeType, len(a.Data))
	}
}

func printWarnings(warnings []mapi.Warning, logger *slog.Logger) {
	for _, w := range warnings {
		logger.Warn(w.Message, "code", w.Code, "severity", w.Severity.String(), "context", w.Context)
	}
}

func emitJSON(v map[string]any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		slog.Error("encode output", "err", err)
		os.Exit(1)
	}
}
