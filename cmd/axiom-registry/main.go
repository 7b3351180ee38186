// Command axiom-registry inspects persisted registration journals: the
// notation and implicit declarations recorded by the elaborator's
// persistent object store.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/axiom-lang/axiom/internal/implicits"
	"github.com/axiom-lang/axiom/internal/numeral"
	"github.com/axiom-lang/axiom/internal/objstore"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "axiom-registry",
		Short:         "Inspect persisted notation and implicit registrations",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newShowCmd(), newWatchCmd())
	return root
}

func newShowCmd() *cobra.Command {
	var kind string
	cmd := &cobra.Command{
		Use:   "show <journal>",
		Short: "Print the registrations recorded in a journal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			journal, err := objstore.Open(args[0])
			if err != nil {
				return err
			}
			printJournal(cmd, journal, kind)
			return nil
		},
	}
	cmd.Flags().StringVar(&kind, "kind", "",
		fmt.Sprintf("only show entries of this kind (e.g. %q, %q)",
			numeral.JournalKindTag, implicits.JournalKindTag))
	return cmd
}

func printJournal(cmd *cobra.Command, journal *objstore.Journal, kind string) {
	shown := 0
	for i, e := range journal.Entries() {
		if kind != "" && e.Kind != kind {
			continue
		}
		shown++
		cmd.Printf("%3d %s%s\n", i+1, e.Kind, summarize(e))
		for _, line := range strings.Split(strings.TrimRight(e.Payload, "\n"), "\n") {
			cmd.Printf("      %s\n", line)
		}
	}
	cmd.Printf("%d registrations\n", shown)
}

// summarize renders a one-line description for entry kinds the tool knows
// how to decode.
func summarize(e objstore.Entry) string {
	if e.Kind != numeral.JournalKindTag {
		return ""
	}
	var req numeral.Request
	if err := yaml.Unmarshal([]byte(e.Payload), &req); err != nil {
		return ""
	}
	return fmt.Sprintf(": %s via %s/%s", req.Subject, req.ToFn.Name, req.OfFn.Name)
}

func newWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch <journal>",
		Short: "Reload and summarize a journal whenever it changes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := zap.NewDevelopment()
			if err != nil {
				return err
			}
			defer logger.Sync()

			path := args[0]
			watcher, err := fsnotify.NewWatcher()
			if err != nil {
				return err
			}
			defer watcher.Close()
			// Watch the directory: editors replace files on save, which
			// would otherwise drop the watch on the file itself.
			if err := watcher.Add(filepath.Dir(path)); err != nil {
				return err
			}

			reload := func() {
				journal, err := objstore.Open(path)
				if err != nil {
					logger.Warn("journal reload failed", zap.Error(err))
					return
				}
				logger.Info("journal reloaded",
					zap.String("path", path),
					zap.Int("registrations", journal.Len()))
			}
			reload()

			for {
				select {
				case <-cmd.Context().Done():
					return nil
				case event, ok := <-watcher.Events:
					if !ok {
						return nil
					}
					if filepath.Clean(event.Name) != filepath.Clean(path) {
						continue
					}
					if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
						reload()
					}
				case err, ok := <-watcher.Errors:
					if !ok {
						return nil
					}
					logger.Warn("watch error", zap.Error(err))
				}
			}
		},
	}
}
