package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Version is set at build time
	Version = "dev"
)

var rootCmd = &cobra.Command{
	Use:   "sentinel-harness",
	Short: "Differential test harness for the sentinel container runtime",
	Long: `sentinel-harness proves behavioral equivalence between the sentinel
sandboxed runtime and the platform default runtime (runc). Each test
case runs an identical command under both engines and requires their
stdout to be byte-identical. The suite is strictly sequential and
aborts on the first failure.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
