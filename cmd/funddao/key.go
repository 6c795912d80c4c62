package main

import (
	"encoding/hex"
	"fmt"

	"github.com/calehh/funddao/crypto"
	"github.com/spf13/cobra"
)

type keyArguments struct {
	Skey string
	Gen  bool
}

var keyArgs keyArguments

var keyCmd = &cobra.Command{
	Use:   "key",
	Short: "Show or generate the local signing key",
	Long:  ``,
	Run:   keyRun,
}

func init() {
	keyFlag(keyCmd, &keyArgs.Skey)
	keyCmd.Flags().BoolVarP(&keyArgs.Gen, "gen", "g", false, "generate the key file if missing")
}

func keyRun(cmd *cobra.Command, args []string) {
	var pv *crypto.PV
	var err error
	if keyArgs.Gen {
		pv, err = crypto.GenFilePV(keyArgs.Skey)
		if err != nil {
			fmt.Printf("generate key err:%v\n", err)
			return
		}
	} else {
		pv = crypto.LoadFilePV(keyArgs.Skey)
	}
	fmt.Println("address:", pv.Address())
	fmt.Println("pubkey:", hex.EncodeToString(pv.PublicKey()))
}
