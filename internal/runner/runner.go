package runner

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/projectdiscovery/goflags"
	"github.com/projectdiscovery/gologger"
	"github.com/projectdiscovery/gologger/levels"
	fileutil "github.com/projectdiscovery/utils/file"
)

// Options holds every CLI-configurable knob for a graphsumm run.
type Options struct {
	Inputs        goflags.StringSlice // RDF file paths to summarize
	Output        string
	InferNS       bool
	IgnoreUnknown bool
	MinOccurs     int
	Verbose       bool
	Silent        bool
}

// ParseFlags wires up the graphsumm flag set, following the teacher's
// goflags/gologger idiom: grouped flags, then a verbosity pass, then the
// stdin and default-output fallbacks before returning control to main.
func ParseFlags() *Options {
	opts := &Options{}
	flagSet := goflags.NewFlagSet()
	flagSet.SetDescription(`Summarize large RDF graphs into a namespace-level Turtle graph.`)

	flagSet.CreateGroup("input", "Input",
		flagSet.StringSliceVarP(&opts.Inputs, "list", "l", nil, "RDF input files to summarize (stdin, comma-separated, file)", goflags.FileCommaSeparatedStringSliceOptions),
	)

	flagSet.CreateGroup("processing", "Processing",
		flagSet.BoolVarP(&opts.InferNS, "infer-ns", "i", true, "run namespace inference before normalization"),
		flagSet.BoolVarP(&opts.IgnoreUnknown, "ignore-unknown", "u", false, "drop triples with an unresolved namespace term"),
		flagSet.IntVarP(&opts.MinOccurs, "min-occurs", "mo", 10, "minimum edge occurrence count kept in the summary"),
	)

	flagSet.CreateGroup("output", "Output",
		flagSet.StringVarP(&opts.Output, "output", "o", "", "output directory (default timestamped ./graphsumm-out-<ts>)"),
		flagSet.BoolVarP(&opts.Verbose, "verbose", "v", false, "display verbose output"),
		flagSet.BoolVar(&opts.Silent, "silent", false, "display results only"),
		flagSet.CallbackVar(printVersion, "version", "display graphsumm version"),
	)

	if err := flagSet.Parse(); err != nil {
		gologger.Fatal().Msgf("Could not read flags: %s\n", err)
	}

	if opts.Silent {
		gologger.DefaultLogger.SetMaxLevel(levels.LevelSilent)
	} else if opts.Verbose {
		gologger.DefaultLogger.SetMaxLevel(levels.LevelVerbose)
	}
	showBanner()

	// read from stdin when no -l/--list was given
	if len(opts.Inputs) == 0 && fileutil.HasStdin() {
		bin, err := io.ReadAll(os.Stdin)
		if err != nil {
			gologger.Error().Msgf("failed to read input from stdin got %v", err)
		}
		opts.Inputs = strings.Fields(string(bin))
	}

	if len(opts.Inputs) == 0 {
		gologger.Fatal().Msgf("graphsumm: no input files found")
	}

	if opts.Output == "" {
		opts.Output = fmt.Sprintf("graphsumm-out-%s", time.Now().UTC().Format("20060102-150405"))
	}

	return opts
}

func printVersion() {
	gologger.Info().Msgf("Current version: %s", version)
	os.Exit(0)
}
