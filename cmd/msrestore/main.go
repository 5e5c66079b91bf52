package main

import (
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/javi11/msbackup"
)

var cmdMain = &cobra.Command{
	Use:   "msrestore <backup-dir>",
	Short: "Restore files split across MSDOS 2.x BACKUP volumes",
	Long: `msrestore scans <backup-dir> for volume directories (each holding a
BACKUPID.@@@ identification record), reassembles files split across volumes,
and writes them under the output directory with normalized paths.`,
	Args: cobra.ExactArgs(1),
	Run:  run,
}

var flagMain struct {
	Output  string
	Verbose bool
	Strict  bool
}

func init() {
	cmdMain.Flags().StringVarP(&flagMain.Output, "output", "o", ".", "Directory to restore files into")
	cmdMain.Flags().BoolVarP(&flagMain.Verbose, "verbose", "v", false, "Log every fragment as it is processed")
	cmdMain.Flags().BoolVar(&flagMain.Strict, "strict", false, "Abort the run on an unreadable volume header instead of skipping the volume")
}

func main() {
	if err := cmdMain.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(_ *cobra.Command, args []string) {
	level := zerolog.InfoLevel
	if flagMain.Verbose {
		level = zerolog.DebugLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()

	opts := []msbackup.Option{msbackup.WithLogger(logger)}
	if flagMain.Strict {
		opts = append(opts, msbackup.WithStrictHeaders())
	}
	rep, err := msbackup.NewRestorer(flagMain.Output, opts...).Run(args[0])
	check(err)

	fmt.Printf("restored %d files (%s) from %d volumes\n",
		rep.FilesWritten, humanize.Bytes(uint64(rep.BytesWritten)), rep.Volumes)
	if len(rep.Skipped) > 0 {
		fmt.Printf("skipped %d fragment records\n", len(rep.Skipped))
	}
	if len(rep.HeaderErrors) > 0 {
		fmt.Printf("skipped %d volumes with unreadable headers\n", len(rep.HeaderErrors))
	}
	for _, w := range rep.Warnings {
		fmt.Printf("warning: %s\n", w)
	}
	if len(rep.Unfinished) > 0 {
		fmt.Println("Unfinished files:")
		for _, u := range rep.Unfinished {
			fmt.Printf("    %s (%d fragments)\n", u.Path, u.Fragments)
		}
	}
}

func fatalf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

func check(err error) {
	if err != nil {
		fatalf("%v", err)
	}
}
