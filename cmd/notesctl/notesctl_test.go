package main

import (
	"bytes"
	"context"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	clientgrpc "elevennote/internal/client/adapters/grpc"
	"elevennote/internal/client/flow"
	grpcadapter "elevennote/internal/notes/adapters/grpc"
	"elevennote/internal/notes/adapters/memory"
	"elevennote/internal/notes/adapters/services"
	notesapp "elevennote/internal/notes/app"
	"elevennote/internal/notes/config"
)

const testSecret = "notesctl-test-secret"

func startNotes(t *testing.T) string {
	t.Helper()
	ctx := context.Background()

	server := grpcadapter.New(&config.GRPCConfig{Host: "127.0.0.1"},
		grpcadapter.AuthUnaryInterceptor(services.NewJWTIdentity(testSecret)),
	)
	server.RegisterService(grpcadapter.NewNoteHandler(notesapp.NewNoteUseCase(memory.NewNoteRepository())).RegisterService)

	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	server.Serve(ctx, lis)
	t.Cleanup(func() {
		stopCtx, cancel := context.WithTimeout(ctx, time.Second)
		defer cancel()
		_ = server.Stop(stopCtx)
	})
	return lis.Addr().String()
}

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func signToken(t *testing.T, userID string) string {
	t.Helper()
	out, err := run(t, "", "token", "--secret", testSecret, "--user", userID)
	require.NoError(t, err)
	return strings.TrimSpace(out)
}

func TestTokenCommand(t *testing.T) {
	tok := signToken(t, "alice")

	userID, err := services.NewJWTIdentity(testSecret).CurrentUserID(context.Background(), tok)
	require.NoError(t, err)
	assert.Equal(t, "alice", userID)
}

func TestNotesCommands(t *testing.T) {
	addr := startNotes(t)
	tok := signToken(t, "alice")
	common := []string{"--addr", addr, "--token", tok}

	out, err := run(t, "", append(common, "refresh")...)
	require.NoError(t, err)
	assert.Contains(t, out, "You have no notes yet.")

	out, err = run(t, "\n", append(common, "new", "-t", "Groceries", "-c", "milk, eggs")...)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "== "+flow.TitleNewNote+" ==\n"))
	assert.Contains(t, out, "The note was added.")

	client, err := clientgrpc.Dial(context.Background(), addr, tok)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	notes, err := client.ListNotes(context.Background())
	require.NoError(t, err)
	require.Len(t, notes, 1)
	id := notes[0].ID

	out, err = run(t, "\n", append(common, "edit", id, "--starred")...)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "== "+flow.TitleEditNote+" ==\n"))
	assert.Contains(t, out, "The note's been updated.")

	out, err = run(t, "", append(common, "list")...)
	require.NoError(t, err)
	assert.Contains(t, out, "Groceries")
	assert.True(t, strings.HasPrefix(out, flow.BusyLoadingNotes+"\n*"))

	out, err = run(t, "", append(common, "show", id)...)
	require.NoError(t, err)
	assert.Contains(t, out, "["+id+"] Groceries")
	assert.Contains(t, out, "milk, eggs")

	out, err = run(t, "Nope\n", append(common, "delete", id)...)
	require.NoError(t, err)
	assert.Contains(t, out, "Are you sure you want to delete this note?")

	out, err = run(t, "\n", append(common, "delete", id, "--yes")...)
	require.NoError(t, err)
	assert.Contains(t, out, "The note has been deleted.")

	out, err = run(t, "\n", append(common, "show", id)...)
	require.ErrorIs(t, err, flow.ErrNotFound)
	assert.Contains(t, out, "That note couldn't be found. Maybe it's been deleted?")
}

func TestNewCommandValidation(t *testing.T) {
	addr := startNotes(t)
	tok := signToken(t, "alice")

	out, err := run(t, "\n", "--addr", addr, "--token", tok, "new", "-t", "  ", "-c", "x")

	require.ErrorIs(t, err, flow.ErrValidation)
	assert.Contains(t, out, "A note needs both a title and some content.")
}

func TestMissingToken(t *testing.T) {
	t.Setenv("NOTESCTL_TOKEN", "")

	_, err := run(t, "", "list")

	assert.ErrorIs(t, err, ErrMissingToken)
}

func TestTokenFromEnvironment(t *testing.T) {
	addr := startNotes(t)
	t.Setenv("NOTESCTL_TOKEN", signToken(t, "bob"))
	t.Setenv("NOTESCTL_ADDR", addr)

	out, err := run(t, "", "list")

	require.NoError(t, err)
	assert.Contains(t, out, "You have no notes yet.")
}
