package app

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/rbright/mull/internal/cli"
	"github.com/rbright/mull/internal/config"
	"github.com/rbright/mull/internal/entity"
	"github.com/rbright/mull/internal/gateway"
	"github.com/rbright/mull/internal/store"
	"github.com/rbright/mull/internal/synthesis"
)

// commandStore handles the one-shot folder/note commands that talk straight
// to the gateway without a capture session.
func (r Runner) commandStore(ctx context.Context, parsed cli.Parsed, cfg config.Config, logger *slog.Logger) int {
	gw := gateway.New(cfg.Gateway)

	var synth store.Synthesizer
	if parsed.Command == cli.CommandSynthesize {
		client, err := synthesis.NewClient(ctx, cfg.Synthesis.APIKey, cfg.Synthesis.Model)
		if err != nil {
			fmt.Fprintf(r.Stderr, "error: %v\n", err)
			return 1
		}
		synth = client
	}

	st := store.New(logger, gw, synth)

	var err error
	switch parsed.Command {
	case cli.CommandFolders:
		err = r.listFolders(ctx, st)
	case cli.CommandFolder:
		err = r.createFolder(ctx, st, parsed.Args)
	case cli.CommandNotes:
		err = r.listNotes(ctx, st, parsed.Folder)
	case cli.CommandJot:
		err = r.jot(ctx, st, parsed.Folder, parsed.Args)
	case cli.CommandSynthesize:
		err = r.synthesize(ctx, st, parsed.Folder)
	}

	if err != nil {
		fmt.Fprintf(r.Stderr, "error: %v\n", err)
		return 1
	}
	return 0
}

func (r Runner) listFolders(ctx context.Context, st *store.Store) error {
	if err := st.RefreshFolders(ctx); err != nil {
		return err
	}

	folders := st.Folders()
	if len(folders) == 0 {
		fmt.Fprintln(r.Stdout, "no folders")
		return nil
	}
	for _, folder := range folders {
		line := fmt.Sprintf("%s  %s — %s", folder.CreatedAt.Format("2006-01-02"), folder.Name, folder.Description)
		if len(folder.Tags) > 0 {
			line += "  [" + strings.Join(folder.Tags, ", ") + "]"
		}
		fmt.Fprintln(r.Stdout, line)
	}
	return nil
}

func (r Runner) createFolder(ctx context.Context, st *store.Store, args []string) error {
	name, description := args[0], args[1]
	tags := args[2:]

	folder, err := st.CreateFolder(ctx, name, description, tags)
	if err != nil {
		return err
	}
	fmt.Fprintf(r.Stdout, "created folder %q (%s)\n", folder.Name, folder.ID)
	return nil
}

func (r Runner) listNotes(ctx context.Context, st *store.Store, folderName string) error {
	folder, err := resolveFolder(ctx, st, folderName)
	if err != nil {
		return err
	}
	if err := st.SetCurrentFolder(ctx, folder.ID); err != nil {
		return err
	}

	notes := st.Notes(folder.ID)
	if len(notes) == 0 {
		fmt.Fprintf(r.Stdout, "no notes in %q\n", folder.Name)
		return nil
	}
	for _, note := range notes {
		fmt.Fprintf(r.Stdout, "[%s v%d] %s\n", note.Type, note.Version, note.Content)
		if note.FileURL != "" {
			fmt.Fprintf(r.Stdout, "      %s\n", note.FileURL)
		}
		if note.Transcription != "" {
			fmt.Fprintf(r.Stdout, "      transcription: %s\n", note.Transcription)
		}
	}

	if idea, ok := st.Synthesis(folder.ID); ok {
		fmt.Fprintf(r.Stdout, "\nsynthesis (%s):\n%s\n", idea.CreatedAt.Format("2006-01-02 15:04"), idea.Content)
	}
	return nil
}

func (r Runner) jot(ctx context.Context, st *store.Store, folderName string, words []string) error {
	folder, err := resolveFolder(ctx, st, folderName)
	if err != nil {
		return err
	}

	note, err := st.AddNote(ctx, folder.ID, strings.Join(words, " "), entity.NoteText, "")
	if err != nil {
		return err
	}
	fmt.Fprintf(r.Stdout, "noted in %q (%s)\n", folder.Name, note.ID)
	return nil
}

func (r Runner) synthesize(ctx context.Context, st *store.Store, folderName string) error {
	folder, err := resolveFolder(ctx, st, folderName)
	if err != nil {
		return err
	}
	if err := st.SetCurrentFolder(ctx, folder.ID); err != nil {
		return err
	}

	idea, err := st.SynthesizeFolder(ctx, folder.ID)
	if err != nil {
		return err
	}
	fmt.Fprintln(r.Stdout, idea.Content)
	return nil
}

// resolveFolder fetches the folder list and matches --folder by name.
func resolveFolder(ctx context.Context, st *store.Store, name string) (entity.Folder, error) {
	if strings.TrimSpace(name) == "" {
		return entity.Folder{}, fmt.Errorf("no target folder; pass --folder NAME")
	}
	if err := st.RefreshFolders(ctx); err != nil {
		return entity.Folder{}, err
	}
	folder, ok := st.FolderByName(name)
	if !ok {
		return entity.Folder{}, fmt.Errorf("no folder named %q; create it with: mull folder %q DESCRIPTION", name, name)
	}
	return folder, nil
}
