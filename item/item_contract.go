package item

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

// Item describes a single minted token.
type Item struct {
	// Current owner of the token.
	Owner interop.Hash160
	// Opaque metadata reference chosen at mint time, e.g. an IPFS URI.
	URI string
}

// Prefixes used for contract data storage.
const (
	// prefixTotalSupply contains the overall number of minted items.
	prefixTotalSupply byte = 0x00
	// prefixBalance contains map from the owner to the number of owned items.
	prefixBalance byte = 0x01
	// prefixAccountToken contains map from (owner + token key) to token id,
	// where token key = decimal representation of the id.
	prefixAccountToken byte = 0x02
	// prefixItem contains map from token key to the serialized Item structure.
	prefixItem byte = 0x03
	// prefixApproval contains map from token key to the account authorized to
	// transfer this token on the owner's behalf.
	prefixApproval byte = 0x04
	// prefixCounter contains the id assigned to the next minted item.
	prefixCounter byte = 0x05
	// prefixOwner contains the account allowed to update the contract.
	prefixOwner byte = 0x06
)

// Errors thrown by the contract methods.
const (
	// ErrItemNotFound is thrown on any access to a token id that was never minted.
	ErrItemNotFound = "item does not exist"
	// ErrNotItemOwner is thrown when the declared holder does not own the token.
	ErrNotItemOwner = "not item owner"
)

func _deploy(data interface{}, isUpdate bool) {
	ctx := storage.GetContext()
	if isUpdate {
		args := data.([]interface{})
		common.CheckVersion(args[len(args)-1].(int))
		return
	}

	args := data.([]interface{})
	owner := args[0].(interop.Hash160)
	if !common.IsValidAddress(owner) {
		panic("incorrect length of owner script hash")
	}

	storage.Put(ctx, []byte{prefixOwner}, owner)
	storage.Put(ctx, []byte{prefixTotalSupply}, 0)
	storage.Put(ctx, []byte{prefixCounter}, 0)

	runtime.Log("item contract initialized")
}

// Update method updates contract source code and manifest. Can be invoked
// only by the contract owner.
func Update(script []byte, manifest []byte, data interface{}) {
	ctx := storage.GetReadOnlyContext()
	owner := storage.Get(ctx, []byte{prefixOwner}).(interop.Hash160)
	common.CheckOwnerWitness(owner)

	contract.Call(interop.Hash160(management.Hash), "update",
		contract.All, script, manifest, common.AppendVersion(data))
	runtime.Log("item contract updated")
}

// Symbol returns the token symbol.
func Symbol() string {
	return "AHI"
}

// Decimals returns the token precision, which is always zero: items are
// not divisible.
func Decimals() int {
	return 0
}

// TotalSupply returns the overall number of minted items.
func TotalSupply() int {
	ctx := storage.GetReadOnlyContext()
	supply := storage.Get(ctx, []byte{prefixTotalSupply})
	if supply != nil {
		return supply.(int)
	}
	return 0
}

// Mint creates a new item owned by owner with the provided metadata
// reference and returns its id. Ids grow monotonically and are never reused.
// The method must be witnessed by owner.
//
// Produces Transfer notification with empty sender.
func Mint(owner interop.Hash160, uri string) int {
	if !common.IsValidAddress(owner) {
		panic("invalid account")
	}
	common.CheckOwnerWitness(owner)

	ctx := storage.GetContext()
	return mint(ctx, owner, uri)
}

// BulkMint creates one item per metadata reference in uris, all owned by
// owner, and returns the id of the first one. The rest follow sequentially.
// The method must be witnessed by owner.
//
// Produces Transfer notification per minted item.
func BulkMint(owner interop.Hash160, uris []string) int {
	if !common.IsValidAddress(owner) {
		panic("invalid account")
	}
	if len(uris) == 0 {
		panic("empty mint list")
	}
	common.CheckOwnerWitness(owner)

	ctx := storage.GetContext()
	first := mint(ctx, owner, uris[0])
	for i := 1; i < len(uris); i++ {
		mint(ctx, owner, uris[i])
	}
	return first
}

// OwnerOf returns the current owner of the specified item.
func OwnerOf(tokenID int) interop.Hash160 {
	ctx := storage.GetReadOnlyContext()
	it := getItem(ctx, tokenID)
	return it.Owner
}

// TokenURI returns the metadata reference the item was minted with.
func TokenURI(tokenID int) string {
	ctx := storage.GetReadOnlyContext()
	it := getItem(ctx, tokenID)
	return it.URI
}

// Properties returns owner and metadata reference of the specified item.
func Properties(tokenID int) map[string]interface{} {
	ctx := storage.GetReadOnlyContext()
	it := getItem(ctx, tokenID)
	return map[string]interface{}{
		"owner": it.Owner,
		"uri":   it.URI,
	}
}

// BalanceOf returns the overall number of items owned by the specified owner.
func BalanceOf(owner interop.Hash160) int {
	if !common.IsValidAddress(owner) {
		panic("invalid account")
	}
	ctx := storage.GetReadOnlyContext()
	balance := storage.Get(ctx, append([]byte{prefixBalance}, owner...))
	if balance == nil {
		return 0
	}
	return balance.(int)
}

// TokensOf returns an iterator over ids of the items owned by the specified
// owner.
func TokensOf(owner interop.Hash160) iterator.Iterator {
	if !common.IsValidAddress(owner) {
		panic("invalid account")
	}
	ctx := storage.GetReadOnlyContext()
	return storage.Find(ctx, append([]byte{prefixAccountToken}, owner...), storage.ValuesOnly)
}

// Approve authorizes the spender to transfer the specified item on the
// owner's behalf. Approval is per-token, a repeated call replaces the
// previous spender and the approval is consumed by the next transfer. The
// method must be witnessed by the current owner.
//
// Produces Approval notification.
func Approve(tokenID int, spender interop.Hash160) {
	if !common.IsValidAddress(spender) {
		panic("invalid account")
	}

	ctx := storage.GetContext()
	it := getItem(ctx, tokenID)
	common.CheckOwnerWitness(it.Owner)

	storage.Put(ctx, approvalKey(tokenID), spender)
	runtime.Notify("Approval", it.Owner, spender, tokenID)
}

// ApprovedOf returns the account authorized to transfer the specified item,
// or an empty value if there is none.
func ApprovedOf(tokenID int) interop.Hash160 {
	ctx := storage.GetReadOnlyContext()
	getItem(ctx, tokenID) // existence check
	spender := storage.Get(ctx, approvalKey(tokenID))
	if spender == nil {
		return nil
	}
	return spender.(interop.Hash160)
}

// TransferFrom moves the item from its owner to another account. The declared
// holder must be the actual owner of the token. The call is authorized when
// witnessed by the owner, invoked directly by a contract deployed at the
// owner address, or witnessed by (or invoked by a contract of) the account
// previously authorized with Approve. It returns false when none of these
// hold. Any approval on the token is consumed by a successful transfer.
//
// Produces Transfer notification.
func TransferFrom(from, to interop.Hash160, tokenID int) bool {
	if !common.IsValidAddress(to) {
		panic("invalid account")
	}

	ctx := storage.GetContext()
	it := getItem(ctx, tokenID)
	if !common.BytesEqual(it.Owner, from) {
		panic(ErrNotItemOwner)
	}

	authorized := common.CalledByEntity(from)
	if !authorized {
		spender := storage.Get(ctx, approvalKey(tokenID))
		if spender != nil {
			authorized = common.CalledByEntity(spender.(interop.Hash160))
		}
	}
	if !authorized {
		return false
	}

	storage.Delete(ctx, approvalKey(tokenID))

	if !common.BytesEqual(from, to) {
		it.Owner = to
		common.SetSerialized(ctx, itemKey(tokenID), it)

		updateBalance(ctx, tokenID, from, -1)
		updateBalance(ctx, tokenID, to, +1)
	}

	runtime.Notify("Transfer", from, to, tokenID)
	return true
}

// Version returns the version of the contract.
func Version() int {
	return common.Version
}

func mint(ctx storage.Context, owner interop.Hash160, uri string) int {
	id := storage.Get(ctx, []byte{prefixCounter}).(int)
	storage.Put(ctx, []byte{prefixCounter}, id+1)

	it := Item{
		Owner: owner,
		URI:   uri,
	}
	common.SetSerialized(ctx, itemKey(id), it)
	updateBalance(ctx, id, owner, +1)

	supply := storage.Get(ctx, []byte{prefixTotalSupply}).(int)
	storage.Put(ctx, []byte{prefixTotalSupply}, supply+1)

	runtime.Notify("Transfer", interop.Hash160(nil), owner, id)
	return id
}

func updateBalance(ctx storage.Context, tokenID int, acc interop.Hash160, diff int) {
	balanceKey := append([]byte{prefixBalance}, acc...)
	balance := 0
	if b := storage.Get(ctx, balanceKey); b != nil {
		balance = b.(int)
	}
	balance += diff
	if balance == 0 {
		storage.Delete(ctx, balanceKey)
	} else {
		storage.Put(ctx, balanceKey, balance)
	}

	accountKey := append(append([]byte{prefixAccountToken}, acc...), tokenKey(tokenID)...)
	if diff < 0 {
		storage.Delete(ctx, accountKey)
	} else {
		storage.Put(ctx, accountKey, tokenID)
	}
}

func getItem(ctx storage.Context, tokenID int) Item {
	data := storage.Get(ctx, itemKey(tokenID))
	if data == nil {
		panic(ErrItemNotFound)
	}
	return std.Deserialize(data.([]byte)).(Item)
}

func tokenKey(tokenID int) []byte {
	return []byte(std.Itoa(tokenID, 10))
}

func itemKey(tokenID int) []byte {
	return append([]byte{prefixItem}, tokenKey(tokenID)...)
}

func approvalKey(tokenID int) []byte {
	return append([]byte{prefixApproval}, tokenKey(tokenID)...)
}
