package main

import (
	"github.com/spf13/cobra"

	"elevennote/internal/client/adapters/terminal"
	"elevennote/internal/client/flow"
	"elevennote/internal/notes/domain/entities"
)

func (a *app) newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List your notes, starred and newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, view, err := a.session(cmd)
			if err != nil {
				return err
			}
			defer client.Close()

			return flow.NewListPage(client, view).Appear(cmd.Context())
		},
	}
}

func (a *app) newRefreshCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "refresh",
		Short: "Re-read the list from the service and report an empty list",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, view, err := a.session(cmd)
			if err != nil {
				return err
			}
			defer client.Close()

			return flow.NewListPage(client, view).Refresh(cmd.Context())
		},
	}
}

func (a *app) newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [id]",
		Short: "Show a note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, view, err := a.session(cmd)
			if err != nil {
				return err
			}
			defer client.Close()

			editor := flow.NewEditor(client, view, args[0])
			view.ShowTitle(editor.Title())
			if err := editor.Load(cmd.Context()); err != nil {
				return err
			}
			showDraft(view, editor)
			return nil
		},
	}
}

func (a *app) newNewCmd() *cobra.Command {
	var title, content string

	cmd := &cobra.Command{
		Use:   "new",
		Short: "Create a note",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, view, err := a.session(cmd)
			if err != nil {
				return err
			}
			defer client.Close()

			editor := flow.NewEditor(client, view, "")
			view.ShowTitle(editor.Title())
			editor.SetTitle(title)
			editor.SetContent(content)
			return editor.Save(cmd.Context())
		},
	}
	cmd.Flags().StringVarP(&title, "title", "t", "", "note title")
	cmd.Flags().StringVarP(&content, "content", "c", "", "note text")
	return cmd
}

func (a *app) newEditCmd() *cobra.Command {
	var (
		title, content string
		starred        bool
	)

	cmd := &cobra.Command{
		Use:   "edit [id]",
		Short: "Edit a note; flags that are not given keep their current value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, view, err := a.session(cmd)
			if err != nil {
				return err
			}
			defer client.Close()

			editor := flow.NewEditor(client, view, args[0])
			view.ShowTitle(editor.Title())
			if err := editor.Load(cmd.Context()); err != nil {
				return err
			}

			flags := cmd.Flags()
			if flags.Changed("title") {
				editor.SetTitle(title)
			}
			if flags.Changed("content") {
				editor.SetContent(content)
			}
			if flags.Changed("starred") {
				if err := editor.SetStarred(starred); err != nil {
					return err
				}
			}
			return editor.Save(cmd.Context())
		},
	}
	cmd.Flags().StringVarP(&title, "title", "t", "", "new title")
	cmd.Flags().StringVarP(&content, "content", "c", "", "new text")
	cmd.Flags().BoolVarP(&starred, "starred", "s", false, "star or unstar the note (--starred=false)")
	return cmd
}

func (a *app) newDeleteCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete [id]",
		Short: "Delete a note after confirmation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, view, err := a.session(cmd)
			if err != nil {
				return err
			}
			defer client.Close()

			var v flow.View = view
			if yes {
				v = confirmedView{view}
			}
			return flow.NewEditor(client, v, args[0]).Delete(cmd.Context())
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")
	return cmd
}

func showDraft(view *terminal.View, editor *flow.Editor) {
	d := editor.Draft()
	view.ShowNote(&entities.Note{
		ID:        editor.NoteID(),
		Title:     d.Title,
		Content:   d.Content,
		IsStarred: d.IsStarred,
	})
}
