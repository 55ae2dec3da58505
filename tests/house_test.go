package tests

import (
	"testing"

	"github.com/nspcc-dev/neo-go/pkg/core/interop/storage"
	"github.com/nspcc-dev/neo-go/pkg/core/state"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
	"github.com/plausibly/auction-house-dapp/rpc/house"
	"github.com/stretchr/testify/require"
)

const (
	startPrice = int64(500_000_000_000_000_000) // 0.5 coins
	higherBid  = int64(600_000_000_000_000_000) // 0.6 coins
)

func TestHouseDeployDefaults(t *testing.T) {
	env := newHouseEnv(t)

	env.house.Invoke(t, stackitem.NewByteArray(env.e.CommitteeHash.BytesBE()), "admin")
	env.house.Invoke(t, true, "isManager", env.e.CommitteeHash)
	env.house.Invoke(t, false, "isManager", env.house.NewAccount(t).ScriptHash())
	env.house.Invoke(t, 25, "feeBp")
	env.house.Invoke(t, 0, "collectedFees")
	env.house.Invoke(t, stackitem.NewByteArray(env.coinHash.BytesBE()), "coinAddress")
	env.house.Invoke(t, 0, "auctionCount")
}

func TestHouseSetAdmin(t *testing.T) {
	env := newHouseEnv(t)
	newAdmin := env.house.NewAccount(t)

	env.house.WithSigners(newAdmin).InvokeFail(t, "permission denied",
		"setAdmin", newAdmin.ScriptHash())

	env.house.Invoke(t, stackitem.Null{}, "setAdmin", newAdmin.ScriptHash())
	env.house.Invoke(t, stackitem.NewByteArray(newAdmin.ScriptHash().BytesBE()), "admin")

	// The new admin is a manager, the old one lost every right.
	env.house.Invoke(t, true, "isManager", newAdmin.ScriptHash())
	env.house.Invoke(t, false, "isManager", env.e.CommitteeHash)
	env.house.InvokeFail(t, "permission denied", "setFee", 100)
	env.house.InvokeFail(t, "permission denied", "setAdmin", env.e.CommitteeHash)

	cAdmin := env.house.WithSigners(newAdmin)
	cAdmin.Invoke(t, stackitem.Null{}, "setFee", 100)
	env.house.Invoke(t, 100, "feeBp")
}

func TestHouseManagers(t *testing.T) {
	env := newHouseEnv(t)
	manager := env.house.NewAccount(t)
	cManager := env.house.WithSigners(manager)

	cManager.InvokeFail(t, "permission denied", "addManager", manager.ScriptHash())
	cManager.InvokeFail(t, "permission denied", "setFee", 100)
	env.house.Invoke(t, 25, "feeBp")

	env.house.Invoke(t, stackitem.Null{}, "addManager", manager.ScriptHash())
	env.house.Invoke(t, true, "isManager", manager.ScriptHash())
	// Re-adding is a no-op.
	env.house.Invoke(t, stackitem.Null{}, "addManager", manager.ScriptHash())

	cManager.Invoke(t, stackitem.Null{}, "setFee", 100)
	env.house.Invoke(t, 100, "feeBp")
	// Manager right does not include admin rights.
	cManager.InvokeFail(t, "permission denied", "removeManager", manager.ScriptHash())

	env.house.Invoke(t, stackitem.Null{}, "removeManager", manager.ScriptHash())
	env.house.Invoke(t, false, "isManager", manager.ScriptHash())
	cManager.InvokeFail(t, "permission denied", "setFee", 50)

	// Removing a non-manager is a no-op, removing the admin is forbidden.
	env.house.Invoke(t, stackitem.Null{}, "removeManager", manager.ScriptHash())
	env.house.InvokeFail(t, "cannot remove current admin", "removeManager", env.e.CommitteeHash)
	env.house.Invoke(t, true, "isManager", env.e.CommitteeHash)
}

func TestHouseSetFee(t *testing.T) {
	env := newHouseEnv(t)

	env.house.Invoke(t, stackitem.Null{}, "setFee", 0)
	env.house.Invoke(t, 0, "feeBp")
	env.house.Invoke(t, stackitem.Null{}, "setFee", 10000)
	env.house.Invoke(t, 10000, "feeBp")

	env.house.InvokeFail(t, "invalid fee", "setFee", 10001)
	env.house.InvokeFail(t, "invalid fee", "setFee", -1)
	env.house.Invoke(t, 10000, "feeBp")
}

func TestHouseCreateAuction(t *testing.T) {
	env := newHouseEnv(t)
	seller := env.house.NewAccount(t)
	cSeller := env.house.WithSigners(seller)

	tokenID := env.mintItem(t, seller)
	endTime := int64(env.now(t)) + hourMS

	// Only the item owner can list it.
	env.house.InvokeFail(t, "not item owner", "createAuction",
		env.itemHash, tokenID, startPrice, endTime)
	cSeller.InvokeFail(t, "end time in the past", "createAuction",
		env.itemHash, tokenID, startPrice, int64(1))
	cSeller.InvokeFail(t, "invalid price", "createAuction",
		env.itemHash, tokenID, int64(0), endTime)

	env.item.WithSigners(seller).Invoke(t, stackitem.Null{}, "approve", tokenID, env.houseHash)
	h := cSeller.Invoke(t, 0, "createAuction", env.itemHash, tokenID, startPrice, endTime)
	env.e.CheckTxNotificationEvent(t, h, 1, state.NotificationEvent{
		ScriptHash: env.houseHash,
		Name:       "AuctionCreated",
		Item: stackitem.NewArray([]stackitem.Item{
			stackitem.Make(0),
			stackitem.NewByteArray(seller.ScriptHash().BytesBE()),
			stackitem.NewByteArray(env.itemHash.BytesBE()),
			stackitem.Make(tokenID),
			stackitem.Make(startPrice),
			stackitem.Make(endTime),
		}),
	})

	// Custody of the item moved to the house.
	require.Equal(t, env.houseHash, env.itemOwner(t, tokenID))
	env.house.Invoke(t, 1, "auctionCount")

	a := env.getAuction(t, 0)
	require.Equal(t, seller.ScriptHash(), a.Seller)
	require.Equal(t, env.itemHash, a.Asset)
	require.Equal(t, tokenID, a.TokenID.Int64())
	require.Equal(t, endTime, a.EndTime.Int64())
	require.Equal(t, startPrice, a.HighestBid.Int64())
	require.Empty(t, a.Bidder)
	require.False(t, a.Archived)

	env.house.InvokeFail(t, "auction not valid", "getAuction", 1)
}

func TestHouseLowerPrice(t *testing.T) {
	env := newHouseEnv(t)
	seller := env.house.NewAccount(t)
	cSeller := env.house.WithSigners(seller)

	id := env.listItem(t, seller, startPrice, int64(env.now(t))+hourMS)

	env.house.InvokeFail(t, "not auction seller", "lowerPrice", id, startPrice/2)
	cSeller.InvokeFail(t, "invalid price", "lowerPrice", id, 0)

	cSeller.Invoke(t, stackitem.Null{}, "lowerPrice", id, startPrice/2)
	require.Equal(t, startPrice/2, env.getAuction(t, id).HighestBid.Int64())

	// Raising the price back is fine as well.
	cSeller.Invoke(t, stackitem.Null{}, "lowerPrice", id, startPrice)

	bidder := env.house.NewAccount(t)
	env.fundAccount(t, bidder, startPrice)
	env.house.WithSigners(bidder).Invoke(t, stackitem.Null{}, "placeBid",
		id, bidder.ScriptHash(), startPrice)

	cSeller.InvokeFail(t, "bids already placed", "lowerPrice", id, startPrice/2)
}

func TestHousePlaceBid(t *testing.T) {
	env := newHouseEnv(t)
	seller := env.house.NewAccount(t)
	first := env.house.NewAccount(t)
	second := env.house.NewAccount(t)
	cFirst := env.house.WithSigners(first)
	cSecond := env.house.WithSigners(second)

	endTime := int64(env.now(t)) + hourMS
	id := env.listItem(t, seller, startPrice, endTime)

	env.fundAccount(t, first, startPrice)
	env.fundAccount(t, second, higherBid)

	cFirst.InvokeFail(t, "auction not valid", "placeBid", id+1, first.ScriptHash(), startPrice)
	cFirst.InvokeFail(t, "bid too low", "placeBid", id, first.ScriptHash(), startPrice-1)
	cSecond.InvokeFail(t, "witness check failed", "placeBid", id, first.ScriptHash(), startPrice)

	// The first bid may match the starting price exactly and is escrowed
	// with the house.
	h := cFirst.Invoke(t, stackitem.Null{}, "placeBid", id, first.ScriptHash(), startPrice)
	env.e.CheckTxNotificationEvent(t, h, 1, state.NotificationEvent{
		ScriptHash: env.houseHash,
		Name:       "BidPlaced",
		Item: stackitem.NewArray([]stackitem.Item{
			stackitem.Make(id),
			stackitem.NewByteArray(first.ScriptHash().BytesBE()),
			stackitem.Make(startPrice),
		}),
	})
	require.EqualValues(t, 0, env.coinBalance(t, first.ScriptHash()))
	require.Equal(t, startPrice, env.coinBalance(t, env.houseHash))

	// Following bids must strictly exceed the current one.
	cSecond.InvokeFail(t, "bid too low", "placeBid", id, second.ScriptHash(), startPrice)

	// A displaced bidder gets the full escrow back in the same transaction.
	cSecond.Invoke(t, stackitem.Null{}, "placeBid", id, second.ScriptHash(), higherBid)
	require.Equal(t, startPrice, env.coinBalance(t, first.ScriptHash()))
	require.EqualValues(t, 0, env.coinBalance(t, second.ScriptHash()))
	require.Equal(t, higherBid, env.coinBalance(t, env.houseHash))

	a := env.getAuction(t, id)
	require.Equal(t, second.ScriptHash(), util160(t, a.Bidder))
	require.Equal(t, higherBid, a.HighestBid.Int64())

	// Unfunded outbid attempt fails and changes nothing.
	cFirst.InvokeFail(t, "insufficient balance", "placeBid",
		id, first.ScriptHash(), higherBid+1)
	require.Equal(t, higherBid, env.coinBalance(t, env.houseHash))

	// No bids after the deadline.
	env.passTime(t, uint64(endTime))
	env.fundAccount(t, first, higherBid+1)
	cFirst.InvokeFail(t, "auction not valid", "placeBid", id, first.ScriptHash(), higherBid+1)
}

func TestHouseCancelAuction(t *testing.T) {
	env := newHouseEnv(t)
	seller := env.house.NewAccount(t)
	bidder := env.house.NewAccount(t)
	cSeller := env.house.WithSigners(seller)

	id := env.listItem(t, seller, startPrice, int64(env.now(t))+hourMS)
	tokenID := env.getAuction(t, id).TokenID.Int64()

	env.fundAccount(t, bidder, startPrice)
	env.house.WithSigners(bidder).Invoke(t, stackitem.Null{}, "placeBid",
		id, bidder.ScriptHash(), startPrice)

	env.house.InvokeFail(t, "not auction seller", "cancelAuction", id)

	// The bidder is made whole, the item returns home, no fee is taken.
	cSeller.Invoke(t, stackitem.Null{}, "cancelAuction", id)
	require.Equal(t, startPrice, env.coinBalance(t, bidder.ScriptHash()))
	require.EqualValues(t, 0, env.coinBalance(t, env.houseHash))
	require.Equal(t, seller.ScriptHash(), env.itemOwner(t, tokenID))
	require.EqualValues(t, 0, env.collectedFees(t))
	require.True(t, env.getAuction(t, id).Archived)

	// Archived is terminal for every mutating path.
	cSeller.InvokeFail(t, "auction not valid", "cancelAuction", id)
	cSeller.InvokeFail(t, "auction not valid", "forceEndAuction", id)
	cSeller.InvokeFail(t, "auction not valid", "lowerPrice", id, startPrice)
	env.house.WithSigners(bidder).InvokeFail(t, "auction not valid", "placeBid",
		id, bidder.ScriptHash(), higherBid)
}

func TestHouseForceEndAuction(t *testing.T) {
	env := newHouseEnv(t)
	seller := env.house.NewAccount(t)
	bidder := env.house.NewAccount(t)
	cSeller := env.house.WithSigners(seller)

	id := env.listItem(t, seller, startPrice, int64(env.now(t))+hourMS)
	tokenID := env.getAuction(t, id).TokenID.Int64()

	cSeller.InvokeFail(t, "no bids", "forceEndAuction", id)

	env.fundAccount(t, bidder, startPrice)
	env.house.WithSigners(bidder).Invoke(t, stackitem.Null{}, "placeBid",
		id, bidder.ScriptHash(), startPrice)

	env.house.InvokeFail(t, "not auction seller", "forceEndAuction", id)

	// Settles immediately, no need to wait for the deadline.
	cSeller.Invoke(t, stackitem.Null{}, "forceEndAuction", id)

	houseCut := startPrice / 10000 * 25
	require.Equal(t, startPrice-houseCut, env.coinBalance(t, seller.ScriptHash()))
	require.Equal(t, houseCut, env.collectedFees(t))
	require.Equal(t, houseCut, env.coinBalance(t, env.houseHash))
	require.Equal(t, bidder.ScriptHash(), env.itemOwner(t, tokenID))
	require.True(t, env.getAuction(t, id).Archived)

	cSeller.InvokeFail(t, "auction not valid", "forceEndAuction", id)
	env.house.InvokeFail(t, "auction not valid", "claimItems", id)
}

func TestHouseClaimItems(t *testing.T) {
	env := newHouseEnv(t)
	seller := env.house.NewAccount(t)
	first := env.house.NewAccount(t)
	second := env.house.NewAccount(t)

	// 2.5% fee makes the cut arithmetic visible.
	env.house.Invoke(t, stackitem.Null{}, "setFee", 250)

	endTime := int64(env.now(t)) + hourMS
	id := env.listItem(t, seller, startPrice, endTime)
	tokenID := env.getAuction(t, id).TokenID.Int64()

	noBids := env.listItem(t, seller, startPrice, endTime)

	env.fundAccount(t, first, startPrice)
	env.fundAccount(t, second, higherBid)
	env.house.WithSigners(first).Invoke(t, stackitem.Null{}, "placeBid",
		id, first.ScriptHash(), startPrice)
	env.house.WithSigners(second).Invoke(t, stackitem.Null{}, "placeBid",
		id, second.ScriptHash(), higherBid)

	env.house.InvokeFail(t, "auction not valid", "claimItems", id)

	env.passTime(t, uint64(endTime))

	// Claim is open to anyone once the deadline has passed.
	rando := env.house.NewAccount(t)
	env.house.WithSigners(rando).Invoke(t, stackitem.Null{}, "claimItems", id)

	houseCut := higherBid / 10000 * 250
	require.Equal(t, higherBid-houseCut, env.coinBalance(t, seller.ScriptHash()))
	require.Equal(t, houseCut, env.collectedFees(t))
	require.Equal(t, startPrice, env.coinBalance(t, first.ScriptHash()))
	require.Equal(t, second.ScriptHash(), env.itemOwner(t, tokenID))
	require.True(t, env.getAuction(t, id).Archived)

	env.house.InvokeFail(t, "auction not valid", "claimItems", id)

	// An expired auction nobody bid on has nothing to claim.
	env.house.InvokeFail(t, "no bidder to claim", "claimItems", noBids)
}

func TestHouseWithdrawFees(t *testing.T) {
	env := newHouseEnv(t)
	seller := env.house.NewAccount(t)
	bidder := env.house.NewAccount(t)

	env.house.Invoke(t, stackitem.Null{}, "setFee", 250)

	id := env.listItem(t, seller, startPrice, int64(env.now(t))+hourMS)
	env.fundAccount(t, bidder, startPrice)
	env.house.WithSigners(bidder).Invoke(t, stackitem.Null{}, "placeBid",
		id, bidder.ScriptHash(), startPrice)
	env.house.WithSigners(seller).Invoke(t, stackitem.Null{}, "forceEndAuction", id)

	collected := env.collectedFees(t)
	require.Equal(t, startPrice/10000*250, collected)

	outsider := env.house.NewAccount(t)
	env.house.WithSigners(outsider).InvokeFail(t, "permission denied",
		"withdrawFees", collected)
	env.house.InvokeFail(t, "invalid amount", "withdrawFees", 0)
	env.house.InvokeFail(t, "insufficient fee balance", "withdrawFees", collected+1)

	env.house.Invoke(t, stackitem.Null{}, "withdrawFees", collected)
	require.Equal(t, collected, env.coinBalance(t, env.e.CommitteeHash))
	require.EqualValues(t, 0, env.collectedFees(t))
	require.EqualValues(t, 0, env.coinBalance(t, env.houseHash))

	env.house.InvokeFail(t, "insufficient fee balance", "withdrawFees", 1)
}

func TestHouseEscrowConservation(t *testing.T) {
	env := newHouseEnv(t)
	seller := env.house.NewAccount(t)
	first := env.house.NewAccount(t)
	second := env.house.NewAccount(t)

	env.house.Invoke(t, stackitem.Null{}, "setFee", 250)
	endTime := int64(env.now(t)) + hourMS

	live := env.listItem(t, seller, startPrice, endTime)
	settled := env.listItem(t, seller, startPrice, endTime)

	env.fundAccount(t, first, startPrice)
	env.fundAccount(t, second, higherBid)
	env.house.WithSigners(first).Invoke(t, stackitem.Null{}, "placeBid",
		live, first.ScriptHash(), startPrice)
	env.house.WithSigners(second).Invoke(t, stackitem.Null{}, "placeBid",
		settled, second.ScriptHash(), higherBid)
	env.house.WithSigners(seller).Invoke(t, stackitem.Null{}, "forceEndAuction", settled)

	// The house holds exactly the live escrow plus the collected fees.
	require.Equal(t, startPrice+env.collectedFees(t), env.coinBalance(t, env.houseHash))
}

func TestHouseAuctionsIterator(t *testing.T) {
	env := newHouseEnv(t)
	seller := env.house.NewAccount(t)
	endTime := int64(env.now(t)) + hourMS

	env.listItem(t, seller, startPrice, endTime)
	env.listItem(t, seller, 2*startPrice, endTime)
	env.house.WithSigners(seller).Invoke(t, stackitem.Null{}, "cancelAuction", 0)

	s, err := env.house.TestInvoke(t, "auctions")
	require.NoError(t, err)

	iter, ok := s.Pop().Value().(*storage.Iterator)
	require.True(t, ok)

	var records []*house.HouseAuction
	for iter.Next() {
		a := new(house.HouseAuction)
		require.NoError(t, a.FromStackItem(iter.Value()))
		records = append(records, a)
	}
	require.Len(t, records, 2)
	require.True(t, records[0].Archived)
	require.False(t, records[1].Archived)
	require.Equal(t, 2*startPrice, records[1].HighestBid.Int64())
}

func TestHouseVersion(t *testing.T) {
	env := newHouseEnv(t)
	env.house.Invoke(t, 1_000_000, "version")
	env.coin.Invoke(t, 1_000_000, "version")
	env.item.Invoke(t, 1_000_000, "version")
}
