package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	clientgrpc "elevennote/internal/client/adapters/grpc"
	"elevennote/internal/client/adapters/terminal"
	"elevennote/pkg/logger"
)

// Имена настроек. Каждую можно задать флагом, переменной NOTESCTL_* или в файле конфигурации.
const (
	EnvPrefix      = "NOTESCTL"
	keyConfig      = "config"
	keyAddr        = "addr"
	keyToken       = "token"
	keyTimeout     = "timeout"
	keyDialTimeout = "dial-timeout"
	keyLogLevel    = "log-level"
)

// Сообщения об ошибках.
const (
	ErrReadConfig   = "failed to read config file"
	ErrInitLogger   = "failed to initialize logger"
	ErrConnect      = "failed to connect to notes service"
	ErrDecodeConfig = "failed to decode settings"
)

const defaultDialTimeout = 5 * time.Second

// ErrMissingToken возвращается, если токен доступа не задан.
var ErrMissingToken = errors.New("access token is required: use --token or NOTESCTL_TOKEN")

// settings - итоговые настройки клиента.
type settings struct {
	Addr        string        `mapstructure:"addr"`
	Token       string        `mapstructure:"token"`
	Timeout     time.Duration `mapstructure:"timeout"`
	DialTimeout time.Duration `mapstructure:"dial-timeout"`
	LogLevel    string        `mapstructure:"log-level"`
}

// app хранит зависимости, общие для всех команд.
type app struct {
	v *viper.Viper
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New()}

	rootCmd := &cobra.Command{
		Use:   "notesctl",
		Short: "Terminal client for the ElevenNote notes service",
		Long: `notesctl lists, shows, creates, edits and deletes your notes
through the notes gRPC service.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd)
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.String(keyConfig, "", "config file (default $HOME/.notesctl.yaml)")
	pf.String(keyAddr, "localhost:50053", "notes service gRPC address")
	pf.String(keyToken, "", "access token (JWT)")
	pf.Duration(keyTimeout, 10*time.Second, "timeout of a single call")
	pf.Duration(keyDialTimeout, defaultDialTimeout, "how long to wait for the connection")
	pf.String(keyLogLevel, "error", "log level: debug, info, warn, error")
	_ = a.v.BindPFlags(pf)

	rootCmd.AddCommand(
		a.newListCmd(),
		a.newRefreshCmd(),
		a.newShowCmd(),
		a.newNewCmd(),
		a.newEditCmd(),
		a.newDeleteCmd(),
		newTokenCmd(),
	)
	return rootCmd
}

func (a *app) init(cmd *cobra.Command) error {
	a.v.SetEnvPrefix(EnvPrefix)
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()

	if file := a.v.GetString(keyConfig); file != "" {
		a.v.SetConfigFile(file)
	} else if home, err := os.UserHomeDir(); err == nil {
		a.v.SetConfigFile(filepath.Join(home, ".notesctl.yaml"))
	}
	if err := a.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if a.v.GetString(keyConfig) != "" || (!errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist)) {
			return fmt.Errorf("%s: %w", ErrReadConfig, err)
		}
	}

	log, err := logger.NewLogger(logger.Development, a.v.GetString(keyLogLevel))
	if err != nil {
		return fmt.Errorf("%s: %w", ErrInitLogger, err)
	}
	logger.SetGlobalLogger(log)
	cmd.SetContext(logger.NewContext(cmd.Context(), log))
	return nil
}

func (a *app) settings() (*settings, error) {
	var s settings
	if err := a.v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrDecodeConfig, err)
	}
	if s.DialTimeout <= 0 {
		s.DialTimeout = defaultDialTimeout
	}
	return &s, nil
}

// session открывает соединение и терминал для одной команды.
func (a *app) session(cmd *cobra.Command) (*clientgrpc.Client, *terminal.View, error) {
	s, err := a.settings()
	if err != nil {
		return nil, nil, err
	}
	if s.Token == "" {
		return nil, nil, ErrMissingToken
	}

	dialCtx, cancel := context.WithTimeout(cmd.Context(), s.DialTimeout)
	defer cancel()

	client, err := clientgrpc.Dial(dialCtx, s.Addr, s.Token, clientgrpc.WithCallTimeout(s.Timeout))
	if err != nil {
		return nil, nil, fmt.Errorf("%s %s: %w", ErrConnect, s.Addr, err)
	}
	return client, terminal.New(cmd.InOrStdin(), cmd.OutOrStdout()), nil
}
