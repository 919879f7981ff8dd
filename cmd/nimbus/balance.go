package main

import (
	"net/http"

	"github.com/urfave/cli/v2"
)

var balance = cli.Command{
	Name:   "balance",
	Usage:  "check the wallet balance across on-chain and channel funds.",
	Action: balanceAction,
}

var refresh = cli.Command{
	Name:   "refresh",
	Usage:  "force the daemon to pull fresh data from its sources.",
	Action: refreshAction,
}

func balanceAction(ctx *cli.Context) error {
	payload, err := doRequest(http.MethodGet, "/v1/balance", nil)
	if err != nil {
		return err
	}

	printRespJSON(payload)

	return nil
}

func refreshAction(ctx *cli.Context) error {
	payload, err := doRequest(http.MethodPost, "/v1/refresh", nil)
	if err != nil {
		return err
	}

	printRespJSON(payload)

	return nil
}
