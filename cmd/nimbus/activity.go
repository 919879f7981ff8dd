package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/urfave/cli/v2"
)

var activity = cli.Command{
	Name:   "activity",
	Usage:  "list the activity feed, newest first.",
	Action: activityAction,
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "type",
			Usage: "restrict to a single kind: onchain or lightning",
		},
		&cli.StringFlag{
			Name:  "direction",
			Usage: "restrict by direction: sent, received or other",
		},
		&cli.StringFlag{
			Name:  "tags",
			Usage: "comma separated list of tags, all must match",
		},
		&cli.BoolFlag{
			Name:  "no-transfers",
			Usage: "hide channel open and close transfers",
		},
	},
}

var tag = cli.Command{
	Name:  "tag",
	Usage: "manage tags on activity items",
	Subcommands: []*cli.Command{
		{
			Name:      "add",
			Usage:     "add a <tag> to activity item <id>",
			Action:    tagAddAction,
			ArgsUsage: "<id> <tag>",
		},
		{
			Name:      "remove",
			Usage:     "remove a <tag> from activity item <id>",
			Action:    tagRemoveAction,
			ArgsUsage: "<id> <tag>",
		},
	},
}

func activityAction(c *cli.Context) error {
	query := url.Values{}
	if kind := c.String("type"); len(kind) > 0 {
		query.Set("type", kind)
	}
	if direction := c.String("direction"); len(direction) > 0 {
		query.Set("direction", direction)
	}
	if tags := c.String("tags"); len(tags) > 0 {
		query.Set("tags", tags)
	}
	if c.Bool("no-transfers") {
		query.Set("includeTransfers", "false")
	}

	endpoint := "/v1/activity"
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	payload, err := doRequest(http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}

	printRespJSON(payload)

	return nil
}

func tagAddAction(c *cli.Context) error {
	if c.NArg() < 2 {
		return cli.Exit("activity id and tag are missing", 1)
	}
	id := c.Args().Get(0)
	body, err := json.Marshal(map[string]string{"tag": c.Args().Get(1)})
	if err != nil {
		return err
	}

	_, err = doRequest(
		http.MethodPost,
		"/v1/activity/"+url.PathEscape(id)+"/tags",
		bytes.NewReader(body),
	)
	return err
}

func tagRemoveAction(c *cli.Context) error {
	if c.NArg() < 2 {
		return cli.Exit("activity id and tag are missing", 1)
	}
	id := c.Args().Get(0)
	tagName := c.Args().Get(1)

	_, err := doRequest(
		http.MethodDelete,
		"/v1/activity/"+url.PathEscape(id)+"/tags/"+url.PathEscape(tagName),
		nil,
	)
	return err
}
