package main

import (
	"fmt"
	"os"

	ethcrypto "github.com/ethereum/go-ethereum/crypto"

	"gigchain/config"
	"gigchain/core/events"
	"gigchain/native/bank"
	"gigchain/native/boards"
	"gigchain/native/escrow"
	"gigchain/native/jobs"
	"gigchain/native/paygate"
	"gigchain/native/reputation"
	"gigchain/state"
	"gigchain/storage"
)

// env wires every module the CLI operates on top of a shared LevelDB state.
type env struct {
	cfg     *config.Config
	db      *storage.LevelDB
	manager *state.Manager
	bank    *bank.Backend
	ledger  *escrow.Ledger
	gate    *paygate.Gate
	engine  *jobs.Engine
	skills  *reputation.Ledger
	boards  *boards.Registry
}

func engineAddress() [20]byte {
	var addr [20]byte
	copy(addr[:], ethcrypto.Keccak256([]byte("gigchain/jobs/engine"))[:20])
	return addr
}

// printEmitter writes every emitted event to stdout so operators can see the
// state changes a command produced.
type printEmitter struct{}

func (printEmitter) Emit(evt events.Event) {
	payload := evt.Event()
	if payload == nil {
		return
	}
	fmt.Printf("event %s", payload.Type)
	for k, v := range payload.Attributes {
		fmt.Printf(" %s=%s", k, v)
	}
	fmt.Println()
}

func openEnv(configPath string) (*env, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	db, err := storage.NewLevelDB(cfg.DataDir)
	if err != nil {
		return nil, err
	}
	manager := state.NewManager(db)

	owner, err := config.ParseAddress(cfg.Owner)
	if err != nil {
		return nil, err
	}
	referee, err := config.ParseAddress(cfg.Referee)
	if err != nil {
		return nil, err
	}
	collector, err := config.ParseAddress(cfg.FeeCollector)
	if err != nil {
		return nil, err
	}

	assetBackend := bank.NewBackend(manager)
	ledger := escrow.NewLedger(append([]string{cfg.Token}, cfg.ExtraTokens...)...)
	ledger.SetState(manager)
	ledger.SetAssetBackend(assetBackend)
	ledger.SetEmitter(printEmitter{})
	if collector != ([20]byte{}) {
		ledger.SetFeeCollector(collector)
	}
	if cfg.FeeBps > 0 {
		if err := ledger.SetFee(cfg.Token, cfg.FeeBps); err != nil {
			return nil, err
		}
	}

	gate := paygate.NewGate(owner, ledger)
	if err := gate.SetEngine(owner, engineAddress()); err != nil {
		return nil, err
	}
	if cfg.ServiceMode {
		if err := gate.SetServiceMode(owner, true); err != nil {
			return nil, err
		}
	}

	skills := reputation.NewLedger(manager)

	engine := jobs.NewEngine(cfg.Token)
	engine.SetState(manager)
	engine.SetGate(gate)
	engine.SetLedgerView(ledger)
	engine.SetSkillsVerifier(skills)
	engine.SetSelfAddress(engineAddress())
	engine.SetReferee(referee)
	engine.SetEmitter(printEmitter{})

	return &env{
		cfg:     cfg,
		db:      db,
		manager: manager,
		bank:    assetBackend,
		ledger:  ledger,
		gate:    gate,
		engine:  engine,
		skills:  skills,
		boards:  boards.NewRegistry(manager),
	}, nil
}

func (e *env) close() {
	if e != nil && e.db != nil {
		_ = e.db.Close()
	}
}

func main() {
	args := os.Args[1:]
	configPath := os.Getenv("GIG_CONFIG")
	if configPath == "" {
		configPath = "gig-cli.toml"
	}
	if len(args) < 1 {
		printUsage()
		return
	}
	environment, err := openEnv(configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer environment.close()

	if err := dispatch(environment, args[0], args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Usage: gig-cli <command> [args]")
	fmt.Println()
	fmt.Println("Asset commands:")
	fmt.Println("  mint <addr> <amount>                     credit external token")
	fmt.Println("  deposit <addr> <amount>                  move external funds into the ledger")
	fmt.Println("  withdraw <addr> <amount>                 move ledger funds back out")
	fmt.Println("  balance <addr>                           show ledger balance")
	fmt.Println()
	fmt.Println("Job commands:")
	fmt.Println("  post-job <client> <workflow> <area> <category> <skills> <defaultPay>")
	fmt.Println("  post-offer <worker> <jobId> <rate> <estimateMinutes> <onTop>")
	fmt.Println("  post-offer-price <worker> <jobId> <price>")
	fmt.Println("  lock-amount <worker> <jobId>             required attachment for accept-offer")
	fmt.Println("  accept-offer <client> <jobId> <worker> <attached>")
	fmt.Println("  start-work|end-work|pause|resume <worker> <jobId>")
	fmt.Println("  confirm-start|confirm-end <client> <jobId>")
	fmt.Println("  add-time <client> <jobId> <minutes> <attached>")
	fmt.Println("  accept-results|reject-results <client> <jobId>")
	fmt.Println("  resolve-dispute <referee> <jobId> <workerAmount> <penaltyFee>")
	fmt.Println("  release <caller> <jobId>")
	fmt.Println("  cancel <client> <jobId>")
	fmt.Println("  job <jobId>                              show job record")
	fmt.Println()
	fmt.Println("Registry commands:")
	fmt.Println("  grant-skills <worker> <areas> <categories> <skills>")
	fmt.Println("  board <area> <category>                  list job ids on a board")
}
