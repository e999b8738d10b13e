package cli

import (
	"fmt"
	"path"

	"github.com/Fuabioo/dehash/internal/core"
	"github.com/spf13/cobra"
)

var scanCmd = &cobra.Command{
	Use:   "scan <archive>",
	Short: "Show the renames an archive would get",
	Long: `Reads the archive's directory listing and prints every rename that
"dehash run" would perform, without extracting or writing anything.`,
	Args: cobra.ExactArgs(1),
	RunE: runScan,
}

func runScan(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	mapping, err := core.Plan(args[0], cfg)
	if err != nil {
		return err
	}

	records := mapping.Records()

	if flagJSON {
		output := map[string]interface{}{
			"archive": args[0],
			"output":  core.OutputPath(args[0], cfg.Output.Prefix),
			"count":   len(records),
			"renames": records,
		}
		return outputJSON(output)
	}

	if len(records) == 0 {
		fmt.Println("No hash suffixes found")
		return nil
	}

	for _, rec := range records {
		old, renamed := path.Join(rec.Dir, rec.OldName), rec.NewName
		if rec.IsDir {
			old += "/"
			renamed += "/"
		}
		fmt.Printf("%s -> %s\n", old, renamed)
	}

	if !flagQuiet {
		fmt.Printf("\n%d entries would be renamed\n", len(records))
	}

	return nil
}
