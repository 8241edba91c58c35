// Command evt3dec decodes an EVT 3.0 raw event stream and writes it
// out in a format selected by the output file's extension. It is a
// thin collaborator around the evt3 decoder core (spec.md §1 scopes
// the CLI surface itself out of the core) and follows the plain
// flag-based style of this codebase's reference main commands: no CLI
// framework, just flag.Parse and os.Exit.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/muthmann/evt3"
	"github.com/muthmann/evt3/writer"
)

const version = "0.1.0"

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("evt3dec", flag.ContinueOnError)
	format := fs.String("format", "x,y,p,t", "CSV field order, a permutation of x,y,p,t")
	triggersPath := fs.String("triggers", "", "optional path to write trigger events as CSV (t,id,value)")
	quiet := fs.Bool("quiet", false, "suppress progress output")
	showVersion := fs.Bool("version", false, "print version and exit")
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "usage: evt3dec [flags] INPUT OUTPUT")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *showVersion {
		fmt.Println("evt3dec", version)
		return 0
	}
	if fs.NArg() != 2 {
		fs.Usage()
		return 2
	}
	input, output := fs.Arg(0), fs.Arg(1)

	res, err := evt3.DecodeFile(input, 0, 0)
	if err != nil {
		log.Printf("decode %s: %v", input, err)
		return 1
	}
	if !*quiet {
		log.Printf("decoded %d CD events, %d triggers from %s", res.CD.Len(), res.Triggers.Len(), input)
	}

	w, err := writer.Get(filepath.Ext(output))
	if err != nil {
		log.Printf("output %s: %v", output, err)
		return 1
	}
	if err := writeToFile(output, w, res, writer.Options{FieldOrder: *format, Header: true}); err != nil {
		log.Printf("write %s: %v", output, err)
		return 1
	}

	if *triggersPath != "" {
		if err := writeTriggers(*triggersPath, res); err != nil {
			log.Printf("write triggers %s: %v", *triggersPath, err)
			return 1
		}
	}

	return 0
}

func writeToFile(path string, w writer.Writer, res *evt3.Result, opts writer.Options) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return w.Write(f, res, opts)
}

func writeTriggers(path string, res *evt3.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	for i := 0; i < res.Triggers.Len(); i++ {
		if _, err := fmt.Fprintf(f, "%d,%d,%d\n", res.Triggers.Timestamp[i], res.Triggers.ID[i], res.Triggers.Value[i]); err != nil {
			return err
		}
	}
	return nil
}
