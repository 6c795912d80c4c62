package main

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/calehh/funddao/action"
	"github.com/calehh/funddao/crypto"
	"github.com/calehh/funddao/relay"
)

func postJSON(url string, path string, request any, response any) error {
	body, err := json.Marshal(request)
	if err != nil {
		return err
	}
	resp, err := http.Post(url+path, "application/json", bytes.NewReader(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	dat, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("status %d: %s", resp.StatusCode, string(dat))
	}
	if response == nil {
		return nil
	}
	return json.Unmarshal(dat, response)
}

func queryStatus(url string) (*relay.GetStatusResponse, error) {
	var res relay.GetStatusResponse
	if err := postJSON(url, "/getStatus", struct{}{}, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func queryAccount(url string, address string) (*relay.GetAccountResponse, error) {
	var res relay.GetAccountResponse
	if err := postJSON(url, "/getAccount", relay.GetAccountReq{Address: address}, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// signAndSend wraps act in a signed envelope and posts it. A zero nonce
// is resolved by asking the service for the account's current one.
func signAndSend(url string, keyPath string, typ action.ActionType, act any, nonce uint64, noSend bool) error {
	status, err := queryStatus(url)
	if err != nil {
		return fmt.Errorf("get status err:%v", err)
	}
	pv := crypto.LoadFilePV(keyPath)
	if nonce == 0 {
		acct, err := queryAccount(url, pv.Address())
		if err != nil {
			return fmt.Errorf("query account err:%v", err)
		}
		nonce = acct.Nonce
	}
	envelope := action.Action{
		Version: action.ActionVersion1,
		Type:    typ,
		Nonce:   nonce,
		Caller:  pv.PublicKey(),
		Act:     act,
	}
	dat, err := envelope.SigData([]byte(status.ChainId))
	if err != nil {
		return fmt.Errorf("action sign data err:%v", err)
	}
	sig, err := pv.Sign(dat)
	if err != nil {
		return fmt.Errorf("sign action err:%v", err)
	}
	envelope.Sig = sig
	if noSend {
		fmt.Println("address:", pv.Address())
		fmt.Println("signature:", hex.EncodeToString(sig))
		return nil
	}
	dat, err = action.MarshalAction(&envelope)
	if err != nil {
		return fmt.Errorf("marshal action err:%v", err)
	}
	resp, err := http.Post(url+"/submitAction", "application/json", bytes.NewReader(dat))
	if err != nil {
		return fmt.Errorf("submit action err:%v", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("submit action status %d: %s", resp.StatusCode, string(body))
	}
	fmt.Printf("%v\n", string(body))
	return nil
}
