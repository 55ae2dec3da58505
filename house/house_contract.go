package house

import (
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/contract"
	"github.com/nspcc-dev/neo-go/pkg/interop/iterator"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/management"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/std"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
	"github.com/plausibly/auction-house-dapp/common"
)

// Auction is a single listing under house custody. Until the auction is
// archived the house owns the listed item and the escrow of the current
// highest bidder; an archived record is immutable history.
type Auction struct {
	// Account that created the auction.
	Seller interop.Hash160
	// Item contract the listed token belongs to.
	Asset interop.Hash160
	// Listed token id.
	TokenID int
	// Deadline (block time, milliseconds) after which bidding closes and
	// claim becomes possible.
	EndTime int
	// Current leading price. Holds the starting price until the first bid.
	HighestBid int
	// Current leading bidder. Empty until the first bid, checked only
	// through hasBidder.
	Bidder interop.Hash160
	// Archived is set by exactly one of cancel, force-end or claim and is
	// never reset.
	Archived bool
}

// Prefixes used for contract data storage.
const (
	// prefixAdmin contains the administrator account.
	prefixAdmin byte = 0x00
	// prefixManager contains map from manager account to boolean true.
	prefixManager byte = 0x01
	// prefixFeeBp contains the protocol fee in basis points.
	prefixFeeBp byte = 0x02
	// prefixCollectedFees contains the accrued, not yet withdrawn fee balance.
	prefixCollectedFees byte = 0x03
	// prefixAuctionCount contains the id assigned to the next auction.
	prefixAuctionCount byte = 0x04
	// prefixAuction contains map from auction id to the serialized Auction.
	prefixAuction byte = 0x05
	// prefixCoin contains the coin contract script hash.
	prefixCoin byte = 0x06
)

const (
	// maxFeeBp is the upper fee bound, 10000 bp = 100%.
	maxFeeBp = 10000
	// defaultFeeBp is the fee configured at deploy, 0.25%.
	defaultFeeBp = 25
)

// Errors thrown by the contract methods. Every precondition violation aborts
// the whole invocation, so no partial state change ever persists.
const (
	// ErrPermissionDenied is thrown when the caller lacks the admin or
	// manager right required by the method.
	ErrPermissionDenied = "permission denied"
	// ErrInvalidFee is thrown when a fee is outside of [0, 10000] bp.
	ErrInvalidFee = "invalid fee"
	// ErrInsufficientFeeBalance is thrown when a withdrawal exceeds the
	// collected fee balance.
	ErrInsufficientFeeBalance = "insufficient fee balance"
	// ErrNotOwner is thrown when the auction creator does not own the item
	// being listed.
	ErrNotOwner = "not item owner"
	// ErrEndTimeInPast is thrown when the auction deadline is not in the future.
	ErrEndTimeInPast = "end time in the past"
	// ErrInvalidPrice is thrown on a non-positive starting or new price.
	ErrInvalidPrice = "invalid price"
	// ErrBidsAlreadyPlaced is thrown on an attempt to lower the price of an
	// auction that already has a bidder.
	ErrBidsAlreadyPlaced = "bids already placed"
	// ErrAuctionNotValid is thrown on access to an unknown or archived
	// auction, or on an attempt to bid after the deadline or claim before it.
	ErrAuctionNotValid = "auction not valid"
	// ErrBidTooLow is thrown when a bid does not beat the current price.
	ErrBidTooLow = "bid too low"
	// ErrInsufficientBalance is thrown when the escrow pull from the bidder
	// fails, i.e. the bidder lacks authorized funds.
	ErrInsufficientBalance = "insufficient balance"
	// ErrNotSeller is thrown when a seller-only method is called by anyone else.
	ErrNotSeller = "not auction seller"
	// ErrNoBids is thrown on force-end of an auction without a bidder.
	ErrNoBids = "no bids"
	// ErrNoBidderToClaim is thrown on claim of an auction without a bidder.
	ErrNoBidderToClaim = "no bidder to claim"
	// ErrItemNotAuthorized is thrown when the house is not authorized to pull
	// the listed item from the seller.
	ErrItemNotAuthorized = "item transfer not authorized"
	// ErrCannotRemoveAdmin is thrown on an attempt to remove the current
	// admin from managers.
	ErrCannotRemoveAdmin = "cannot remove current admin"
)

func _deploy(data interface{}, isUpdate bool) {
	ctx := storage.GetContext()
	if isUpdate {
		args := data.([]interface{})
		common.CheckVersion(args[len(args)-1].(int))
		return
	}

	args := data.([]interface{})
	admin := args[0].(interop.Hash160)
	coinHash := args[1].(interop.Hash160)
	if !common.IsValidAddress(admin) || !common.IsValidAddress(coinHash) {
		panic("incorrect length of contract script hash")
	}

	storage.Put(ctx, []byte{prefixAdmin}, admin)
	storage.Put(ctx, managerKey(admin), true)
	storage.Put(ctx, []byte{prefixFeeBp}, defaultFeeBp)
	storage.Put(ctx, []byte{prefixCollectedFees}, 0)
	storage.Put(ctx, []byte{prefixAuctionCount}, 0)
	storage.Put(ctx, []byte{prefixCoin}, coinHash)

	runtime.Log("auction house contract initialized")
}

// Update method updates contract source code and manifest. Can be invoked
// only by the admin.
func Update(script []byte, manifest []byte, data interface{}) {
	ctx := storage.GetReadOnlyContext()
	if !runtime.CheckWitness(getAdmin(ctx)) {
		panic(ErrPermissionDenied)
	}

	contract.Call(interop.Hash160(management.Hash), "update",
		contract.All, script, manifest, common.AppendVersion(data))
	runtime.Log("auction house contract updated")
}

// Admin returns the current administrator account.
func Admin() interop.Hash160 {
	ctx := storage.GetReadOnlyContext()
	return getAdmin(ctx)
}

// IsManager returns true if the specified account is a manager. The admin is
// always a manager.
func IsManager(account interop.Hash160) bool {
	ctx := storage.GetReadOnlyContext()
	return isManager(ctx, account)
}

// FeeBp returns the protocol fee in basis points applied at settlement.
func FeeBp() int {
	ctx := storage.GetReadOnlyContext()
	return storage.Get(ctx, []byte{prefixFeeBp}).(int)
}

// CollectedFees returns the accrued fee balance that has not been
// withdrawn yet.
func CollectedFees() int {
	ctx := storage.GetReadOnlyContext()
	return storage.Get(ctx, []byte{prefixCollectedFees}).(int)
}

// CoinAddress returns the script hash of the coin contract the house
// settles in.
func CoinAddress() interop.Hash160 {
	ctx := storage.GetReadOnlyContext()
	return storage.Get(ctx, []byte{prefixCoin}).(interop.Hash160)
}

// AuctionCount returns the number of auctions ever created. Ids are assigned
// sequentially from zero and never reused.
func AuctionCount() int {
	ctx := storage.GetReadOnlyContext()
	return storage.Get(ctx, []byte{prefixAuctionCount}).(int)
}

// GetAuction returns the auction record with the specified id.
func GetAuction(id int) Auction {
	ctx := storage.GetReadOnlyContext()
	return getAuction(ctx, id)
}

// Auctions returns an iterator over all auction records, archived ones
// included.
func Auctions() iterator.Iterator {
	ctx := storage.GetReadOnlyContext()
	return storage.Find(ctx, []byte{prefixAuction}, storage.ValuesOnly|storage.DeserializeValues)
}

// SetAdmin replaces the administrator account. The previous admin loses its
// manager right together with the admin one, the new admin becomes a manager.
// Can be invoked only by the current admin.
func SetAdmin(newAdmin interop.Hash160) {
	if !common.IsValidAddress(newAdmin) {
		panic("invalid account")
	}

	ctx := storage.GetContext()
	oldAdmin := getAdmin(ctx)
	if !runtime.CheckWitness(oldAdmin) {
		panic(ErrPermissionDenied)
	}

	storage.Delete(ctx, managerKey(oldAdmin))
	storage.Put(ctx, []byte{prefixAdmin}, newAdmin)
	storage.Put(ctx, managerKey(newAdmin), true)

	runtime.Log("admin changed")
}

// AddManager grants the manager right to the specified account. Adding an
// existing manager is a no-op. Can be invoked only by the admin.
func AddManager(account interop.Hash160) {
	if !common.IsValidAddress(account) {
		panic("invalid account")
	}

	ctx := storage.GetContext()
	if !runtime.CheckWitness(getAdmin(ctx)) {
		panic(ErrPermissionDenied)
	}

	storage.Put(ctx, managerKey(account), true)
}

// RemoveManager revokes the manager right from the specified account.
// Removing a non-manager is a no-op; the current admin can not be removed.
// Can be invoked only by the admin.
func RemoveManager(account interop.Hash160) {
	if !common.IsValidAddress(account) {
		panic("invalid account")
	}

	ctx := storage.GetContext()
	admin := getAdmin(ctx)
	if !runtime.CheckWitness(admin) {
		panic(ErrPermissionDenied)
	}
	if common.BytesEqual(account, admin) {
		panic(ErrCannotRemoveAdmin)
	}

	storage.Delete(ctx, managerKey(account))
}

// SetFee stores the protocol fee in basis points, 10000 bp = 100%. The fee is
// read at settlement time, so changing it affects only auctions settled
// afterwards. Can be invoked only by a manager.
func SetFee(bp int) {
	ctx := storage.GetContext()
	checkManagerWitness(ctx)

	if bp < 0 || bp > maxFeeBp {
		panic(ErrInvalidFee)
	}

	storage.Put(ctx, []byte{prefixFeeBp}, bp)
	runtime.Log("fee changed")
}

// WithdrawFees transfers the requested amount of collected fees from the
// house account to the calling manager. Can be invoked only by a manager.
func WithdrawFees(amount int) {
	ctx := storage.GetContext()
	manager := checkManagerWitness(ctx)

	if amount <= 0 {
		panic("invalid amount")
	}

	collected := storage.Get(ctx, []byte{prefixCollectedFees}).(int)
	if amount > collected {
		panic(ErrInsufficientFeeBalance)
	}

	storage.Put(ctx, []byte{prefixCollectedFees}, collected-amount)
	payCoins(ctx, manager, amount)

	runtime.Log("fees withdrawn")
}

// CreateAuction lists the specified token of the specified item contract for
// sale and returns the id of the new auction. The caller must own the token
// and have the house authorized to transfer it: custody moves to the house
// for the whole lifetime of the auction. The starting price must be positive
// and the deadline (milliseconds, block time) must be in the future.
//
// Produces AuctionCreated notification.
func CreateAuction(asset interop.Hash160, tokenID int, startPrice int, endTime int) int {
	if !common.IsValidAddress(asset) {
		panic("invalid asset contract")
	}

	ctx := storage.GetContext()

	seller := contract.Call(asset, "ownerOf", contract.ReadOnly, tokenID).(interop.Hash160)
	if !runtime.CheckWitness(seller) {
		panic(ErrNotOwner)
	}
	if endTime <= runtime.GetTime() {
		panic(ErrEndTimeInPast)
	}
	if startPrice <= 0 {
		panic(ErrInvalidPrice)
	}

	house := runtime.GetExecutingScriptHash()
	ok := contract.Call(asset, "transferFrom", contract.All, seller, house, tokenID).(bool)
	if !ok {
		panic(ErrItemNotAuthorized)
	}

	id := storage.Get(ctx, []byte{prefixAuctionCount}).(int)
	storage.Put(ctx, []byte{prefixAuctionCount}, id+1)

	a := Auction{
		Seller:     seller,
		Asset:      asset,
		TokenID:    tokenID,
		EndTime:    endTime,
		HighestBid: startPrice,
		Bidder:     interop.Hash160(""),
		Archived:   false,
	}
	putAuction(ctx, id, a)

	runtime.Notify("AuctionCreated", id, seller, asset, tokenID, startPrice, endTime)
	return id
}

// LowerPrice replaces the starting price of an auction that has no bids yet.
// Any positive price is accepted, the new value is not required to be lower
// than the current one. Can be invoked only by the seller.
func LowerPrice(id int, newPrice int) {
	ctx := storage.GetContext()
	a := getAuction(ctx, id)
	if a.Archived {
		panic(ErrAuctionNotValid)
	}
	if !runtime.CheckWitness(a.Seller) {
		panic(ErrNotSeller)
	}
	if hasBidder(a) {
		panic(ErrBidsAlreadyPlaced)
	}
	if newPrice <= 0 {
		panic(ErrInvalidPrice)
	}

	a.HighestBid = newPrice
	putAuction(ctx, id, a)

	runtime.Log("price lowered")
}

// PlaceBid escrows the bid amount of the specified bidder with the house and
// makes the bidder the leading one. The first bid must be at least the
// starting price, every following bid must strictly exceed the current one.
// The full escrow of the displaced bidder is refunded within the same call.
// The bidder must have authorized the house for at least the bid amount in
// the coin contract and must witness the call.
//
// Produces BidPlaced notification.
func PlaceBid(id int, bidder interop.Hash160, amount int) {
	if !common.IsValidAddress(bidder) {
		panic("invalid account")
	}

	ctx := storage.GetContext()
	a := getAuction(ctx, id)
	if a.Archived || runtime.GetTime() >= a.EndTime {
		panic(ErrAuctionNotValid)
	}
	if hasBidder(a) {
		if amount <= a.HighestBid {
			panic(ErrBidTooLow)
		}
	} else if amount < a.HighestBid {
		panic(ErrBidTooLow)
	}
	common.CheckWitness(bidder)

	pullCoins(ctx, bidder, amount)
	if hasBidder(a) {
		payCoins(ctx, a.Bidder, a.HighestBid)
	}

	a.HighestBid = amount
	a.Bidder = bidder
	putAuction(ctx, id, a)

	runtime.Notify("BidPlaced", id, bidder, amount)
}

// CancelAuction unwinds an active auction without a sale: the escrow of the
// current bidder, if any, is refunded in full, the item returns to the
// seller, no fee is taken. The auction becomes archived. Can be invoked only
// by the seller.
//
// Produces AuctionCancelled notification.
func CancelAuction(id int) {
	ctx := storage.GetContext()
	a := getAuction(ctx, id)
	if a.Archived {
		panic(ErrAuctionNotValid)
	}
	if !runtime.CheckWitness(a.Seller) {
		panic(ErrNotSeller)
	}

	if hasBidder(a) {
		payCoins(ctx, a.Bidder, a.HighestBid)
	}
	moveItem(a, a.Seller)

	a.Archived = true
	putAuction(ctx, id, a)

	runtime.Notify("AuctionCancelled", id)
}

// ForceEndAuction settles an auction with its current bidder immediately,
// without waiting for the deadline. An auction without bids can not be
// force-ended, it must be cancelled. Can be invoked only by the seller.
//
// Produces AuctionEnded notification.
func ForceEndAuction(id int) {
	ctx := storage.GetContext()
	a := getAuction(ctx, id)
	if a.Archived {
		panic(ErrAuctionNotValid)
	}
	if !runtime.CheckWitness(a.Seller) {
		panic(ErrNotSeller)
	}
	if !hasBidder(a) {
		panic(ErrNoBids)
	}

	settle(ctx, id, a)

	runtime.Notify("AuctionEnded", id)
}

// ClaimItems settles an auction whose deadline has passed: the winning bid is
// split between the seller and the house fee balance, the item moves to the
// winning bidder, the auction becomes archived. Can be invoked by anyone.
// An expired auction without bids has nothing to settle and must be
// cancelled by the seller instead.
//
// Produces ItemClaimed notification.
func ClaimItems(id int) {
	ctx := storage.GetContext()
	a := getAuction(ctx, id)
	if a.Archived || runtime.GetTime() < a.EndTime {
		panic(ErrAuctionNotValid)
	}
	if !hasBidder(a) {
		panic(ErrNoBidderToClaim)
	}

	settle(ctx, id, a)

	runtime.Notify("ItemClaimed", id, a.Bidder, a.HighestBid)
}

// Version returns the version of the contract.
func Version() int {
	return common.Version
}

// settle pays the seller its cut of the winning bid, retains the house cut in
// the collected fee balance, hands the item over to the winning bidder and
// archives the record. The house cut is floor(bid * feeBp / 10000), so both
// cuts always sum to the bid exactly.
func settle(ctx storage.Context, id int, a Auction) {
	feeBp := storage.Get(ctx, []byte{prefixFeeBp}).(int)
	houseCut := a.HighestBid * feeBp / maxFeeBp
	sellerCut := a.HighestBid - houseCut

	payCoins(ctx, a.Seller, sellerCut)

	collected := storage.Get(ctx, []byte{prefixCollectedFees}).(int)
	storage.Put(ctx, []byte{prefixCollectedFees}, collected+houseCut)

	moveItem(a, a.Bidder)

	a.Archived = true
	putAuction(ctx, id, a)
}

// pullCoins escrows amount from the bidder on the house account using the
// allowance the bidder granted to the house.
func pullCoins(ctx storage.Context, from interop.Hash160, amount int) {
	coin := storage.Get(ctx, []byte{prefixCoin}).(interop.Hash160)
	house := runtime.GetExecutingScriptHash()
	ok := contract.Call(coin, "transferFrom", contract.All, house, from, house, amount).(bool)
	if !ok {
		panic(ErrInsufficientBalance)
	}
}

// payCoins moves amount from the house account to the recipient. The house
// always holds enough to cover refunds, settlements and fee withdrawals, so
// a failure here is an invariant violation.
func payCoins(ctx storage.Context, to interop.Hash160, amount int) {
	coin := storage.Get(ctx, []byte{prefixCoin}).(interop.Hash160)
	house := runtime.GetExecutingScriptHash()
	ok := contract.Call(coin, "transfer", contract.All, house, to, amount).(bool)
	if !ok {
		panic("can't transfer coins from house custody")
	}
}

// moveItem hands the token under custody over to the recipient.
func moveItem(a Auction, to interop.Hash160) {
	house := runtime.GetExecutingScriptHash()
	ok := contract.Call(a.Asset, "transferFrom", contract.All, house, to, a.TokenID).(bool)
	if !ok {
		panic("can't transfer item from house custody")
	}
}

// checkManagerWitness returns the manager account that witnessed the current
// transaction and panics if there is none. Managers are iterated in storage
// order, so the result is deterministic for multi-manager transactions.
func checkManagerWitness(ctx storage.Context) interop.Hash160 {
	it := storage.Find(ctx, []byte{prefixManager}, storage.KeysOnly|storage.RemovePrefix)
	for iterator.Next(it) {
		manager := iterator.Value(it).(interop.Hash160)
		if runtime.CheckWitness(manager) {
			return manager
		}
	}
	panic(ErrPermissionDenied)
}

func getAdmin(ctx storage.Context) interop.Hash160 {
	return storage.Get(ctx, []byte{prefixAdmin}).(interop.Hash160)
}

func isManager(ctx storage.Context, account interop.Hash160) bool {
	return storage.Get(ctx, managerKey(account)) != nil
}

// hasBidder is the single place deciding whether an auction has a real
// bidder: an empty Bidder value means the starting price is not backed by
// escrow yet.
func hasBidder(a Auction) bool {
	return common.IsValidAddress(a.Bidder)
}

func getAuction(ctx storage.Context, id int) Auction {
	data := storage.Get(ctx, auctionKey(id))
	if data == nil {
		panic(ErrAuctionNotValid)
	}
	return std.Deserialize(data.([]byte)).(Auction)
}

func putAuction(ctx storage.Context, id int, a Auction) {
	common.SetSerialized(ctx, auctionKey(id), a)
}

func managerKey(account interop.Hash160) []byte {
	return append([]byte{prefixManager}, account...)
}

func auctionKey(id int) []byte {
	return append([]byte{prefixAuction}, std.Itoa(id, 10)...)
}
