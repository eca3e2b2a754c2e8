// Command wrangle generates the Bison grammar and Flex scanner for the
// Bifrost textual assembler from an ISA description.
package main

import (
	"os"
	"runtime/debug"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// Version is filled in by the linker for release builds.
var Version string

var rootCmd = &cobra.Command{
	Use:   "wrangle [flags] isa_description grammar_output scanner_output",
	Short: "generate the Bifrost assembler grammar and scanner.",
	Long: `Generate the Bison grammar and Flex scanner of the Bifrost textual
assembler from an ISA description. Neither output is written unless both
can be generated.`,
	Args: cobra.ExactArgs(3),
	Run: func(cmd *cobra.Command, args []string) {
		configureLogging(getFlag(cmd, "verbose"))

		err := generate(options{
			isaPath:     args[0],
			parserPath:  args[1],
			scannerPath: args[2],
			dump:        getFlag(cmd, "dump"),
		})
		if err != nil {
			log.Error(err)
			os.Exit(1)
		}
	},
}

func getFlag(cmd *cobra.Command, flag string) bool {
	r, err := cmd.Flags().GetBool(flag)
	if err != nil {
		log.Error(err)
		os.Exit(2)
	}
	return r
}

func configureLogging(verbose bool) {
	log.SetOutput(os.Stderr)
	log.SetFormatter(&log.TextFormatter{
		DisableColors:    !term.IsTerminal(int(os.Stderr.Fd())),
		DisableTimestamp: true,
	})
	if verbose {
		log.SetLevel(log.DebugLevel)
	}
}

func version() string {
	if Version != "" {
		return Version
	}
	if info, ok := debug.ReadBuildInfo(); ok {
		return info.Main.Version
	}
	return "(unknown version)"
}

func init() {
	rootCmd.Version = version()
	rootCmd.Flags().BoolP("verbose", "v", false, "increase logging verbosity")
	rootCmd.Flags().Bool("dump", false, "dump the loaded ISA model and shape groups to stderr")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
