package main

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/antonio-bravo/dbactl/pkg/config"
	"github.com/antonio-bravo/dbactl/pkg/renamer"
	"github.com/antonio-bravo/dbactl/pkg/status"
)

// renameHelperCmd represents the rename-helper command
var renameHelperCmd = &cobra.Command{
	Use:   "rename-helper <path>...",
	Short: "Rewrite deprecated command and parameter names in scripts",
	Long: `Rewrite deprecated command and parameter names in PowerShell scripts
to their current equivalents. Only whole words are replaced and a second run
over the same files changes nothing.

Paths may be files or directories; directories are walked for .ps1, .psm1 and
.psd1 files. Files are rewritten in place in their original encoding unless
--dry-run is set.

Example:
  dbactl rename-helper ./scripts
  dbactl rename-helper legacy.ps1 --dry-run --diff
  dbactl rename-helper ./scripts --watch`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Get()
		encodingName, _ := cmd.Flags().GetString("encoding")
		if encodingName == "" {
			encodingName = cfg.Encoding
		}
		if !cfg.IsValidEncoding(encodingName) {
			return fmt.Errorf("unsupported encoding %q: valid values are %s",
				encodingName, strings.Join(config.ValidEncodings, ", "))
		}
		enc, err := renamer.ParseEncoding(encodingName)
		if err != nil {
			return err
		}

		dryRun, _ := cmd.Flags().GetBool("dry-run")
		showDiff, _ := cmd.Flags().GetBool("diff")
		watch, _ := cmd.Flags().GetBool("watch")
		rw := &renamer.Rewriter{Encoding: enc, DryRun: dryRun}

		if watch {
			if len(args) != 1 {
				return fmt.Errorf("--watch takes exactly one directory")
			}
			watcher := &renamer.Watcher{
				Rewriter: rw,
				Dir:      args[0],
				Logger:   slog.Default(),
			}
			return watcher.Watch(cmd.Context())
		}

		rec := status.NewRecorder()
		for _, path := range args {
			if err := renamePath(rw, rec, path, showDiff); err != nil {
				return err
			}
		}
		return finish(cmd, rec)
	},
}

func isScript(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ps1", ".psm1", ".psd1":
		return true
	}
	return false
}

func renamePath(rw *renamer.Rewriter, rec *status.Recorder, path string, showDiff bool) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		renameFile(rw, rec, path, showDiff)
		return nil
	}
	return filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && isScript(p) {
			renameFile(rw, rec, p, showDiff)
		}
		return nil
	})
}

func renameFile(rw *renamer.Rewriter, rec *status.Recorder, path string, showDiff bool) {
	record := status.Record{Name: path, Type: "Script Rename"}

	res, err := rw.RewriteFile(path)
	if err != nil {
		record.Status = status.OutcomeFailed
		record.Notes = err.Error()
		rec.Add(record)
		return
	}

	if !res.Changed {
		record.Status = status.OutcomeSkipped
		record.Notes = "No deprecated names found"
		rec.Add(record)
		return
	}

	if showDiff {
		fmt.Print(renamer.Diff(res))
	}

	var renames []string
	for _, c := range res.Renames {
		renames = append(renames, fmt.Sprintf("%s -> %s (%d)", c.Old, c.New, c.Count))
	}
	if rw.DryRun {
		record.Status = status.OutcomeSkipped
		record.Notes = "Dry run: would apply " + strings.Join(renames, ", ")
	} else {
		record.Status = status.OutcomeSuccessful
		record.Notes = strings.Join(renames, ", ")
	}
	rec.Add(record)
}

func init() {
	rootCmd.AddCommand(renameHelperCmd)
	addOutputFlag(renameHelperCmd)
	renameHelperCmd.Flags().Bool("dry-run", false, "Report what would change without writing files")
	renameHelperCmd.Flags().Bool("enable-exception", false, "Return an error when any file fails instead of only recording it")
	renameHelperCmd.Flags().Bool("diff", false, "Print a unified diff of each change (with --dry-run previews without writing)")
	renameHelperCmd.Flags().Bool("watch", false, "Watch a directory and rewrite scripts as they change")
	renameHelperCmd.Flags().String("encoding", "", "Script file encoding (utf8, utf8bom, unicode, bigendianunicode, ascii, ansi)")
}
