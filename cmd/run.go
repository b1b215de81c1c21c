package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"slices"
	"syscall"

	jRPC "github.com/0xPolygon/cdk-rpc/rpc"
	msgbridge "github.com/0xPolygon/msgbridge"
	"github.com/0xPolygon/msgbridge/balances"
	"github.com/0xPolygon/msgbridge/bridgestate"
	"github.com/0xPolygon/msgbridge/common"
	"github.com/0xPolygon/msgbridge/config"
	"github.com/0xPolygon/msgbridge/log"
	"github.com/0xPolygon/msgbridge/messaging"
	"github.com/0xPolygon/msgbridge/rpc"
	"github.com/0xPolygon/msgbridge/rpc/client"
	"github.com/0xPolygon/msgbridge/tokenbridge"
	gethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"
)

const dataDirPermissions = 0750

var errNoComponents = errors.New("no component to run")

func start(cliCtx *cli.Context) error {
	c, err := config.Load(cliCtx)
	if err != nil {
		return err
	}

	log.Init(c.Log)

	if c.Log.Environment == log.EnvironmentDevelopment {
		msgbridge.PrintVersion(os.Stdout)
		log.Info("Starting application")
	} else if c.Log.Environment == log.EnvironmentProduction {
		logVersion()
	}

	components := cliCtx.StringSlice(config.FlagComponents)
	if len(components) == 0 {
		return errNoComponents
	}

	ctx, cancel := context.WithCancel(cliCtx.Context)
	defer cancel()

	state, storage, err := loadBridgeState(ctx, c.Snapshot, c.Messaging)
	if err != nil {
		return err
	}
	defer storage.Close()

	g, gCtx := errgroup.WithContext(ctx)
	persisterDone := make(chan struct{})
	persister := bridgestate.NewPersister(
		log.WithFields("module", "bridgestate"), state, storage, c.Snapshot.Interval.Duration,
	)
	g.Go(func() error {
		defer close(persisterDone)
		persister.Start(gCtx)
		return nil
	})

	messagingSvc := runMessagingIfNeeded(components, c.TokenBridge, state)
	book := balances.NewBook()
	tokenBridge, err := runTokenBridgeIfNeeded(components, c.TokenBridge, state, messagingSvc, book, persister)
	if err != nil {
		cancel()
		<-persisterDone
		return err
	}

	if isNeeded([]string{common.RPC}, components) {
		var ledger rpc.TokenLedgerer
		if c.TokenBridge.TokenLedgerURL == "" {
			ledger = book
		}
		server := createRPC(c.RPC, messagingSvc, tokenBridge, ledger, reservedAddresses(tokenBridge, c.TokenBridge)...)
		g.Go(func() error {
			return fmt.Errorf("rpc server stopped: %w", server.Start())
		})
	}

	err = waitSignal(gCtx)
	cancel()
	// the persister saves a last snapshot once cancelled
	<-persisterDone
	return err
}

// loadBridgeState builds the state seeded with the configured controllers and
// restores the last snapshot over it, if any
func loadBridgeState(
	ctx context.Context, cfg bridgestate.Config, messagingCfg messaging.Config,
) (*bridgestate.BridgeState, *bridgestate.Storage, error) {
	logger := log.WithFields("module", "bridgestate")
	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), dataDirPermissions); err != nil {
		return nil, nil, fmt.Errorf("error creating the snapshot dir: %w", err)
	}
	storage, err := bridgestate.NewStorage(logger, cfg.DBPath, cfg.Keep)
	if err != nil {
		return nil, nil, err
	}
	state := bridgestate.New(cfg.MaxOutgoingMessages, messagingCfg.Controllers...)
	restored, err := bridgestate.NewPersister(logger, state, storage, cfg.Interval.Duration).Load(ctx)
	if err != nil {
		storage.Close()
		return nil, nil, err
	}
	if !restored && len(messagingCfg.Controllers) == 0 {
		logger.Warn("empty state without controllers, privileged calls will be rejected")
	}
	return state, storage, nil
}

func runMessagingIfNeeded(
	components []string, tokenBridgeCfg tokenbridge.Config, state *bridgestate.BridgeState,
) *messaging.Service {
	needed := isNeeded([]string{common.MESSAGING}, components) ||
		(isNeeded([]string{common.TOKENBRIDGE}, components) && tokenBridgeCfg.MessagingURL == "")
	if !needed {
		return nil
	}
	return messaging.New(log.WithFields("module", common.MESSAGING), state)
}

func runTokenBridgeIfNeeded(
	components []string,
	cfg tokenbridge.Config,
	state *bridgestate.BridgeState,
	messagingSvc *messaging.Service,
	book *balances.Book,
	checkpointer tokenbridge.Checkpointer,
) (*tokenbridge.Bridge, error) {
	if !isNeeded([]string{common.TOKENBRIDGE}, components) {
		return nil, nil
	}
	logger := log.WithFields("module", common.TOKENBRIDGE)

	var messenger tokenbridge.Messenger
	if cfg.MessagingURL != "" {
		logger.Infof("using remote messaging service at %s", cfg.MessagingURL)
		messenger = client.NewClient(cfg.MessagingURL)
	} else if messagingSvc != nil {
		messenger = messagingSvc
	} else {
		return nil, errors.New("tokenbridge needs the messaging component or TokenBridge.MessagingURL")
	}

	ledger := newTokenLedger(logger, cfg, book)
	return tokenbridge.New(logger, cfg, state, messenger, ledger, book, checkpointer), nil
}

func newTokenLedger(logger *log.Logger, cfg tokenbridge.Config, book *balances.Book) tokenbridge.TokenLedger {
	if cfg.TokenLedgerURL != "" {
		logger.Infof("using remote token ledger at %s", cfg.TokenLedgerURL)
		return client.NewTokenLedgerClient(cfg.TokenLedgerURL)
	}
	logger.Warn("using the in memory token ledger: balances are not persisted, " +
		"minted amounts are lost on restart while the consumed nonces are kept")
	return book
}

// reservedAddresses are the addresses RPC callers can not send or consume messages
// for: the one of a token bridge using the messaging service of this process
func reservedAddresses(tokenBridge *tokenbridge.Bridge, cfg tokenbridge.Config) []gethcommon.Address {
	if tokenBridge == nil || cfg.MessagingURL != "" {
		return nil
	}
	return []gethcommon.Address{cfg.LocalAddress}
}

func createRPC(
	cfg jRPC.Config,
	messagingSvc *messaging.Service,
	tokenBridge *tokenbridge.Bridge,
	ledger rpc.TokenLedgerer,
	reserved ...gethcommon.Address,
) *jRPC.Server {
	logger := log.WithFields("module", common.RPC)

	// components not running reach the endpoints as nil interfaces
	var (
		messager rpc.Messager
		bridger  rpc.TokenBridger
	)
	if messagingSvc != nil {
		messager = messagingSvc
	}
	if tokenBridge != nil {
		bridger = tokenBridge
	}
	services := []jRPC.Service{
		{
			Name: rpc.BRIDGE,
			Service: rpc.NewBridgeEndpoints(
				logger,
				cfg.WriteTimeout.Duration,
				cfg.ReadTimeout.Duration,
				messager,
				bridger,
				reserved...,
			),
		},
	}
	if ledger != nil {
		services = append(services, jRPC.Service{
			Name: rpc.TOKENLEDGER,
			Service: rpc.NewTokenLedgerEndpoints(
				logger, cfg.WriteTimeout.Duration, cfg.ReadTimeout.Duration, ledger,
			),
		})
	}

	return jRPC.NewServer(cfg, services, jRPC.WithLogger(logger.GetSugaredLogger()))
}

func logVersion() {
	log.Infow("Starting application",
		// version is already logged by default
		"gitRevision", msgbridge.GitRev,
		"gitBranch", msgbridge.GitBranch,
		"goVersion", runtime.Version(),
		"built", msgbridge.BuildDate,
		"os/arch", fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
	)
}

// waitSignal blocks until the process is interrupted or a component fails. The
// error of the failed component is returned.
func waitSignal(ctx context.Context) error {
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(signals)

	select {
	case sig := <-signals:
		log.Infof("received %s, terminating application gracefully...", sig)
		return nil
	case <-ctx.Done():
		err := context.Cause(ctx)
		log.Errorf("terminating application: %v", err)
		return err
	}
}

func isNeeded(casesWhereNeeded, actualCases []string) bool {
	for _, actualCase := range actualCases {
		if slices.Contains(casesWhereNeeded, actualCase) {
			return true
		}
	}
	return false
}
