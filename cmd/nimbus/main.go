package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"time"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/urfave/cli/v2"
)

var (
	nimbusDataDir = btcutil.AppDataDir("nimbus-cli", false)
	statePath     = path.Join(nimbusDataDir, "state.json")

	httpClient = &http.Client{Timeout: 15 * time.Second}
)

func main() {
	app := cli.NewApp()

	app.Version = "0.0.1"
	app.Name = "nimbus CLI"
	app.Usage = "Command line interface for the nimbusd daemon"
	app.Commands = append(
		app.Commands,
		&config,
		&balance,
		&activity,
		&transfer,
		&tag,
		&refresh,
	)

	err := app.Run(os.Args)
	if err != nil {
		fatal(err)
	}
}

func getState() (map[string]string, error) {
	data := map[string]string{}

	file, err := os.ReadFile(statePath)
	if err != nil {
		return nil, errors.New("get config state error: try 'config init'")
	}
	json.Unmarshal(file, &data)

	return data, nil
}

func setState(data map[string]string) error {
	if _, err := os.Stat(nimbusDataDir); os.IsNotExist(err) {
		os.Mkdir(nimbusDataDir, os.ModeDir|0755)
	}

	currentData, _ := getState()
	if currentData == nil {
		currentData = map[string]string{}
	}
	for key, value := range data {
		currentData[key] = value
	}

	content, err := json.Marshal(currentData)
	if err != nil {
		return err
	}

	return os.WriteFile(statePath, content, 0644)
}

func baseURL() (string, error) {
	state, err := getState()
	if err != nil {
		return "", err
	}
	addr, ok := state["rpcserver"]
	if !ok {
		return "", errors.New("rpcserver is missing: try 'config init'")
	}
	return "http://" + addr, nil
}

func doRequest(method, endpoint string, body io.Reader) ([]byte, error) {
	base, err := baseURL()
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequest(method, base+endpoint, body)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 400 {
		var reply struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(payload, &reply) == nil && len(reply.Error) > 0 {
			return nil, errors.New(reply.Error)
		}
		return nil, fmt.Errorf("daemon replied with status %d", resp.StatusCode)
	}

	return payload, nil
}

func printRespJSON(payload []byte) {
	var out bytes.Buffer
	if err := json.Indent(&out, payload, "", "\t"); err != nil {
		fmt.Println(string(payload))
		return
	}
	fmt.Println(out.String())
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "[nimbus] %v\n", err)
	os.Exit(1)
}
