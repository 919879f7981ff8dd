package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/urfave/cli/v2"
)

var transfer = cli.Command{
	Name:  "transfer",
	Usage: "manage balance transfers between on-chain and channel funds",
	Subcommands: []*cli.Command{
		{
			Name:   "start",
			Usage:  "record the start of a transfer",
			Action: transferStartAction,
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "type",
					Usage:    "transfer type: open, coop-close or force-close",
					Required: true,
				},
				&cli.Int64Flag{
					Name:     "amount",
					Usage:    "transfer amount in satoshis",
					Required: true,
				},
				&cli.StringFlag{
					Name:  "txid",
					Usage: "funding or closing transaction id, if known",
				},
			},
		},
		{
			Name:   "pending",
			Usage:  "list the pending transfers",
			Action: transferPendingAction,
		},
		{
			Name:      "resolve",
			Usage:     "settle the pending transfer matching <ref>",
			Action:    transferResolveAction,
			ArgsUsage: "<transfer id or channel id>",
		},
	},
}

func transferStartAction(c *cli.Context) error {
	body, err := json.Marshal(map[string]interface{}{
		"type":      c.String("type"),
		"amountSat": c.Int64("amount"),
		"txid":      c.String("txid"),
	})
	if err != nil {
		return err
	}

	payload, err := doRequest(
		http.MethodPost, "/v1/transfers", bytes.NewReader(body),
	)
	if err != nil {
		return err
	}

	printRespJSON(payload)

	return nil
}

func transferPendingAction(c *cli.Context) error {
	payload, err := doRequest(http.MethodGet, "/v1/transfers/pending", nil)
	if err != nil {
		return err
	}

	printRespJSON(payload)

	return nil
}

func transferResolveAction(c *cli.Context) error {
	if c.NArg() < 1 {
		return cli.Exit("transfer reference is missing", 1)
	}
	ref := c.Args().Get(0)

	_, err := doRequest(
		http.MethodPost,
		"/v1/transfers/"+url.PathEscape(ref)+"/resolve",
		nil,
	)
	return err
}
