// auction-dump prints the current state of an auction house contract deployed
// on a Neo blockchain: governance settings, fee balance and every auction
// record ever created.
package main

import (
	"flag"
	"fmt"
	"log"
	"math/big"

	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/plausibly/auction-house-dapp/rpc/house"
)

func main() {
	neoRPCEndpoint := flag.String("rpc", "", "Network address of the Neo RPC server")
	contractHash := flag.String("contract", "", "Script hash of the auction house contract (LE hex)")

	flag.Parse()

	switch {
	case *neoRPCEndpoint == "":
		log.Fatal("missing Neo RPC endpoint")
	case *contractHash == "":
		log.Fatal("missing auction house contract hash")
	}

	houseHash, err := util.Uint160DecodeStringLE(*contractHash)
	if err != nil {
		log.Fatal(fmt.Errorf("invalid contract hash: %w", err))
	}

	err = dump(*neoRPCEndpoint, houseHash)
	if err != nil {
		log.Fatal(err)
	}
}

func dump(neoBlockchainRPCEndpoint string, houseHash util.Uint160) error {
	b, err := newRemoteBlockChain(neoBlockchainRPCEndpoint)
	if err != nil {
		return fmt.Errorf("init remote blockchain: %w", err)
	}

	defer b.close()

	reader := house.NewReader(b.actor, houseHash)

	admin, err := reader.Admin()
	if err != nil {
		return fmt.Errorf("get admin: %w", err)
	}
	feeBp, err := reader.FeeBp()
	if err != nil {
		return fmt.Errorf("get fee: %w", err)
	}
	collected, err := reader.CollectedFees()
	if err != nil {
		return fmt.Errorf("get collected fees: %w", err)
	}
	coin, err := reader.CoinAddress()
	if err != nil {
		return fmt.Errorf("get coin contract: %w", err)
	}
	count, err := reader.AuctionCount()
	if err != nil {
		return fmt.Errorf("get auction count: %w", err)
	}

	fmt.Printf("block:          %d\n", b.currentBlock)
	fmt.Printf("admin:          %s\n", admin.StringLE())
	fmt.Printf("coin contract:  %s\n", coin.StringLE())
	fmt.Printf("fee:            %s bp\n", feeBp)
	fmt.Printf("collected fees: %s\n", collected)
	fmt.Printf("auctions:       %s\n", count)

	for id := int64(0); id < count.Int64(); id++ {
		a, err := reader.GetAuction(big.NewInt(id))
		if err != nil {
			return fmt.Errorf("get auction %d: %w", id, err)
		}

		printAuction(id, a)
	}

	return nil
}

func printAuction(id int64, a *house.HouseAuction) {
	status := "active"
	if a.Archived {
		status = "archived"
	}

	fmt.Printf("auction %d (%s):\n", id, status)
	fmt.Printf("  seller:   %s\n", a.Seller.StringLE())
	fmt.Printf("  asset:    %s, token %s\n", a.Asset.StringLE(), a.TokenID)
	fmt.Printf("  deadline: %s ms\n", a.EndTime)
	fmt.Printf("  price:    %s\n", a.HighestBid)

	if len(a.Bidder) == 0 {
		fmt.Println("  bidder:   none")
		return
	}

	bidder, err := util.Uint160DecodeBytesBE(a.Bidder)
	if err != nil {
		fmt.Printf("  bidder:   invalid (%x)\n", a.Bidder)
		return
	}
	fmt.Printf("  bidder:   %s\n", bidder.StringLE())
}
