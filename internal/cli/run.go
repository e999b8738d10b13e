package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/Fuabioo/dehash/internal/core"
	"github.com/spf13/cobra"
)

var (
	runFlagPrefix      string
	runFlagForce       bool
	runFlagManifest    string
	runFlagMaxAttempts int
)

var runCmd = &cobra.Command{
	Use:   "run [<archive|dir>...]",
	Short: "Strip hashes from archives and write cleaned copies",
	Long: `Processes each archive: extracts it, strips the trailing hashes from
every file and folder name, rewrites links between pages, and writes the
result next to the source with the output prefix (default "new_").

Directories are searched for *.zip files; archives already carrying the
output prefix are skipped. With no arguments the current directory is used.

An existing output archive is never replaced unless --force is given or
the overwrite is confirmed on a terminal.`,
	RunE: runRun,
}

func init() {
	runCmd.Flags().StringVar(&runFlagPrefix, "prefix", "", "Output name prefix (default from config)")
	runCmd.Flags().BoolVar(&runFlagForce, "force", false, "Overwrite existing output archives without asking")
	runCmd.Flags().StringVar(&runFlagManifest, "manifest", "", "Write a YAML report of every rename to this file")
	runCmd.Flags().IntVar(&runFlagMaxAttempts, "max-attempts", 0, "Override collision suffix attempts per name")
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if runFlagPrefix != "" {
		cfg.Output.Prefix = runFlagPrefix
	}
	if runFlagMaxAttempts > 0 {
		cfg.Rename.MaxAttempts = runFlagMaxAttempts
	}
	if runFlagForce {
		cfg.Output.Overwrite = true
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	if len(args) == 0 {
		args = []string{"."}
	}
	archives, err := core.CollectArchives(args, cfg.Output.Prefix)
	if err != nil {
		return err
	}

	if len(archives) == 0 {
		if flagJSON {
			return outputJSON(map[string]interface{}{"archives": []interface{}{}})
		}
		if !flagQuiet {
			fmt.Println("No archives found")
		}
		return nil
	}

	logger := newLogger(os.Stderr)

	items := make([]core.BatchItem, 0, len(archives))
	for _, archive := range archives {
		archiveCfg := *cfg
		if !archiveCfg.Output.Overwrite {
			output := core.OutputPath(archive, cfg.Output.Prefix)
			if _, err := os.Lstat(output); err == nil && confirmPrompt(fmt.Sprintf("Overwrite %s?", output)) {
				archiveCfg.Output.Overwrite = true
			}
		}

		result, err := core.Process(archive, &archiveCfg, core.WithLogger(logger))
		items = append(items, core.BatchItem{Source: archive, Result: result, Err: err})

		if !flagJSON && !flagQuiet {
			printItem(items[len(items)-1])
		}
	}

	if runFlagManifest != "" {
		if err := core.WriteManifest(runFlagManifest, items); err != nil {
			return err
		}
	}

	failed := 0
	for _, item := range items {
		if item.Err != nil {
			failed++
		}
	}

	if flagJSON {
		if err := outputJSON(core.NewManifest(items, time.Now())); err != nil {
			return err
		}
	} else if !flagQuiet {
		fmt.Printf("\n%d succeeded, %d failed\n", len(items)-failed, failed)
	}

	switch {
	case failed == 0:
		return nil
	case len(items) == 1:
		return items[0].Err
	default:
		return &batchFailure{failed: failed, total: len(items)}
	}
}

func printItem(item core.BatchItem) {
	if item.Err != nil {
		fmt.Printf("FAIL %s: %v\n", item.Source, item.Err)
		return
	}

	r := item.Result
	fmt.Printf("ok   %s -> %s\n", r.Source, r.Output)
	fmt.Printf("     %d files (%s), %d renamed, %d rewritten\n",
		r.FileCount, formatBytes(r.ExtractedBytes), len(r.Renames), r.Rewrite.FilesRewritten)
}
