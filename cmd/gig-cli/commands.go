package main

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"gigchain/config"
	"gigchain/native/jobs"
)

func parseAmount(s string) (*big.Int, error) {
	v, ok := new(big.Int).SetString(strings.TrimSpace(s), 10)
	if !ok {
		return nil, fmt.Errorf("invalid amount %q", s)
	}
	return v, nil
}

func parseUint(s string) (uint64, error) {
	return strconv.ParseUint(strings.TrimSpace(s), 10, 64)
}

func parseWorkflow(s string) (jobs.Workflow, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "tm", "time":
		return jobs.WorkflowTimeAndMaterials, nil
	case "tm-confirmed", "time-confirmed":
		return jobs.WorkflowTimeAndMaterialsConfirmed, nil
	case "fixed", "fixed-price":
		return jobs.WorkflowFixedPrice, nil
	default:
		return 0, fmt.Errorf("unknown workflow %q (tm, tm-confirmed, fixed)", s)
	}
}

func need(args []string, n int, usage string) error {
	if len(args) < n {
		return fmt.Errorf("usage: gig-cli %s", usage)
	}
	return nil
}

func dispatch(e *env, command string, args []string) error {
	switch command {
	case "mint":
		if err := need(args, 2, "mint <addr> <amount>"); err != nil {
			return err
		}
		addr, err := config.ParseAddress(args[0])
		if err != nil {
			return err
		}
		amount, err := parseAmount(args[1])
		if err != nil {
			return err
		}
		return e.bank.Mint(addr, e.cfg.Token, amount)
	case "deposit", "withdraw":
		if err := need(args, 2, command+" <addr> <amount>"); err != nil {
			return err
		}
		addr, err := config.ParseAddress(args[0])
		if err != nil {
			return err
		}
		amount, err := parseAmount(args[1])
		if err != nil {
			return err
		}
		if command == "deposit" {
			return e.ledger.Deposit(addr, e.cfg.Token, amount)
		}
		return e.ledger.Withdraw(addr, e.cfg.Token, amount)
	case "balance":
		if err := need(args, 1, "balance <addr>"); err != nil {
			return err
		}
		addr, err := config.ParseAddress(args[0])
		if err != nil {
			return err
		}
		balance, err := e.engine.Balance(addr)
		if err != nil {
			return err
		}
		fmt.Println(balance.String())
		return nil
	case "post-job":
		if err := need(args, 6, "post-job <client> <workflow> <area> <category> <skills> <defaultPay>"); err != nil {
			return err
		}
		client, err := config.ParseAddress(args[0])
		if err != nil {
			return err
		}
		workflow, err := parseWorkflow(args[1])
		if err != nil {
			return err
		}
		area, err := parseUint(args[2])
		if err != nil {
			return err
		}
		category, err := parseUint(args[3])
		if err != nil {
			return err
		}
		skills, err := parseUint(args[4])
		if err != nil {
			return err
		}
		pay, err := parseAmount(args[5])
		if err != nil {
			return err
		}
		id, err := e.engine.PostJob(client, workflow, area, category, skills, pay, [32]byte{})
		if err != nil {
			return err
		}
		if err := e.boards.Add(area, category, id); err != nil {
			return err
		}
		fmt.Printf("job %d posted\n", id)
		return nil
	case "post-offer":
		if err := need(args, 5, "post-offer <worker> <jobId> <rate> <estimateMinutes> <onTop>"); err != nil {
			return err
		}
		worker, err := config.ParseAddress(args[0])
		if err != nil {
			return err
		}
		jobID, err := parseUint(args[1])
		if err != nil {
			return err
		}
		rate, err := parseAmount(args[2])
		if err != nil {
			return err
		}
		estimate, err := parseUint(args[3])
		if err != nil {
			return err
		}
		onTop, err := parseAmount(args[4])
		if err != nil {
			return err
		}
		return e.engine.PostOffer(worker, jobID, rate, onTop, estimate)
	case "post-offer-price":
		if err := need(args, 3, "post-offer-price <worker> <jobId> <price>"); err != nil {
			return err
		}
		worker, err := config.ParseAddress(args[0])
		if err != nil {
			return err
		}
		jobID, err := parseUint(args[1])
		if err != nil {
			return err
		}
		price, err := parseAmount(args[2])
		if err != nil {
			return err
		}
		return e.engine.PostOfferWithPrice(worker, jobID, price)
	case "lock-amount":
		if err := need(args, 2, "lock-amount <worker> <jobId>"); err != nil {
			return err
		}
		worker, err := config.ParseAddress(args[0])
		if err != nil {
			return err
		}
		jobID, err := parseUint(args[1])
		if err != nil {
			return err
		}
		lock, err := e.engine.CalculateLockAmountFor(worker, jobID)
		if err != nil {
			return err
		}
		fmt.Println(lock.String())
		return nil
	case "accept-offer":
		if err := need(args, 4, "accept-offer <client> <jobId> <worker> <attached>"); err != nil {
			return err
		}
		client, err := config.ParseAddress(args[0])
		if err != nil {
			return err
		}
		jobID, err := parseUint(args[1])
		if err != nil {
			return err
		}
		worker, err := config.ParseAddress(args[2])
		if err != nil {
			return err
		}
		attached, err := parseAmount(args[3])
		if err != nil {
			return err
		}
		return e.engine.AcceptOffer(client, jobID, worker, attached)
	case "add-time":
		if err := need(args, 4, "add-time <client> <jobId> <minutes> <attached>"); err != nil {
			return err
		}
		client, err := config.ParseAddress(args[0])
		if err != nil {
			return err
		}
		jobID, err := parseUint(args[1])
		if err != nil {
			return err
		}
		minutes, err := parseUint(args[2])
		if err != nil {
			return err
		}
		attached, err := parseAmount(args[3])
		if err != nil {
			return err
		}
		return e.engine.AddMoreTime(client, jobID, minutes, attached)
	case "resolve-dispute":
		if err := need(args, 4, "resolve-dispute <referee> <jobId> <workerAmount> <penaltyFee>"); err != nil {
			return err
		}
		referee, err := config.ParseAddress(args[0])
		if err != nil {
			return err
		}
		jobID, err := parseUint(args[1])
		if err != nil {
			return err
		}
		workerAmount, err := parseAmount(args[2])
		if err != nil {
			return err
		}
		penalty, err := parseAmount(args[3])
		if err != nil {
			return err
		}
		return e.engine.ResolveWorkDispute(referee, jobID, workerAmount, penalty)
	case "start-work", "end-work", "pause", "resume", "confirm-start", "confirm-end",
		"accept-results", "reject-results", "release", "cancel":
		if err := need(args, 2, command+" <addr> <jobId>"); err != nil {
			return err
		}
		caller, err := config.ParseAddress(args[0])
		if err != nil {
			return err
		}
		jobID, err := parseUint(args[1])
		if err != nil {
			return err
		}
		switch command {
		case "start-work":
			return e.engine.StartWork(caller, jobID)
		case "end-work":
			return e.engine.EndWork(caller, jobID)
		case "pause":
			return e.engine.PauseWork(caller, jobID)
		case "resume":
			return e.engine.ResumeWork(caller, jobID)
		case "confirm-start":
			return e.engine.ConfirmStartWork(caller, jobID)
		case "confirm-end":
			return e.engine.ConfirmEndWork(caller, jobID)
		case "accept-results":
			return e.engine.AcceptWorkResults(caller, jobID)
		case "reject-results":
			return e.engine.RejectWorkResults(caller, jobID)
		case "release":
			return e.engine.ReleasePayment(caller, jobID)
		default:
			return e.engine.CancelJob(caller, jobID)
		}
	case "job":
		if err := need(args, 1, "job <jobId>"); err != nil {
			return err
		}
		jobID, err := parseUint(args[0])
		if err != nil {
			return err
		}
		job, err := e.engine.GetJob(jobID)
		if err != nil {
			return err
		}
		fmt.Printf("job %d state=%s workflow=%s client=%x worker=%x\n",
			job.ID, job.State, job.Workflow, job.Client, job.Worker)
		if job.Time != nil {
			fmt.Printf("  rate=%s onTop=%s estimate=%dm worked=%dm paused=%t\n",
				job.Time.Rate, job.Time.OnTop, job.Time.EstimateMinutes,
				job.Time.WorkedMinutes, job.Time.Paused)
		}
		if job.Fixed != nil {
			fmt.Printf("  price=%s\n", job.Fixed.Price)
		}
		return nil
	case "grant-skills":
		if err := need(args, 4, "grant-skills <worker> <areas> <categories> <skills>"); err != nil {
			return err
		}
		worker, err := config.ParseAddress(args[0])
		if err != nil {
			return err
		}
		areas, err := parseUint(args[1])
		if err != nil {
			return err
		}
		categories, err := parseUint(args[2])
		if err != nil {
			return err
		}
		skills, err := parseUint(args[3])
		if err != nil {
			return err
		}
		_, err = e.skills.Grant(worker, areas, categories, skills)
		return err
	case "board":
		if err := need(args, 2, "board <area> <category>"); err != nil {
			return err
		}
		area, err := parseUint(args[0])
		if err != nil {
			return err
		}
		category, err := parseUint(args[1])
		if err != nil {
			return err
		}
		ids, err := e.boards.Jobs(area, category)
		if err != nil {
			return err
		}
		for _, id := range ids {
			fmt.Println(id)
		}
		return nil
	default:
		printUsage()
		return fmt.Errorf("unknown command %q", command)
	}
}
