package coin

import (
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/contract"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/management"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
	"github.com/plausibly/auction-house-dapp/common"
)

// Token holds all token info.
type Token struct {
	// Ticker symbol.
	Symbol string
	// Amount of decimals.
	Decimals int
}

// Prefixes used for contract data storage.
const (
	// prefixTotalSupply contains the overall amount of minted coins.
	prefixTotalSupply byte = 0x00
	// prefixBalance contains map from holder to its balance.
	prefixBalance byte = 0x01
	// prefixAllowance contains map from (owner + spender) to the amount the
	// spender is still authorized to move on the owner's behalf.
	prefixAllowance byte = 0x02
	// prefixOwner contains the account allowed to update the contract.
	prefixOwner byte = 0x03
)

const (
	symbol   = "AUC"
	decimals = 18
)

// Errors thrown by the contract methods.
const (
	// ErrInvalidAmount is thrown on zero or negative coin amounts.
	ErrInvalidAmount = "invalid amount"
)

var token Token

func createToken() Token {
	return Token{
		Symbol:   symbol,
		Decimals: decimals,
	}
}

func init() {
	token = createToken()
}

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

	runtime.Log("coin contract initialized")
}

// Update method updates contract source code and manifest. Can be invoked
// only by the contract owner.
func Update(script []byte, manifest []byte, data interface{}) {
	ctx := storage.GetReadOnlyContext()
	owner := storage.Get(ctx, []byte{prefixOwner}).(interop.Hash160)
	common.CheckOwnerWitness(owner)

	contract.Call(interop.Hash160(management.Hash), "update",
		contract.All, script, manifest, common.AppendVersion(data))
	runtime.Log("coin contract updated")
}

// Symbol returns the coin ticker symbol.
func Symbol() string {
	return token.Symbol
}

// Decimals returns the precision of coin balances.
func Decimals() int {
	return token.Decimals
}

// TotalSupply returns the overall amount of minted coins.
func TotalSupply() int {
	ctx := storage.GetReadOnlyContext()
	return getSupply(ctx)
}

// BalanceOf returns the coin balance of the specified account.
func BalanceOf(holder interop.Hash160) int {
	ctx := storage.GetReadOnlyContext()
	return getBalance(ctx, holder)
}

// Allowance returns the amount the spender is still authorized to transfer
// from the owner account.
func Allowance(owner, spender interop.Hash160) int {
	ctx := storage.GetReadOnlyContext()
	return getAllowance(ctx, owner, spender)
}

// Mint creates the requested amount of coins on the account of to. The method
// must be witnessed by to: anyone can replenish their own balance, nobody can
// mint to a third party.
//
// Produces Transfer notification with empty sender.
func Mint(to interop.Hash160, amount int) {
	if !common.IsValidAddress(to) {
		panic("invalid account")
	}
	if amount <= 0 {
		panic(ErrInvalidAmount)
	}
	common.CheckWitness(to)

	ctx := storage.GetContext()
	addToBalance(ctx, to, amount)
	storage.Put(ctx, []byte{prefixTotalSupply}, getSupply(ctx)+amount)

	runtime.Notify("Transfer", interop.Hash160(nil), to, amount)
}

// Transfer moves amount of coins from one account to another. It returns
// false if from has not enough coins. The method must be witnessed by from or
// invoked directly by a contract deployed at from: this lets the auction
// house pay out coins held on its own account.
//
// Produces Transfer notification.
func Transfer(from, to interop.Hash160, amount int) bool {
	if !common.IsValidAddress(from) || !common.IsValidAddress(to) {
		panic("invalid account")
	}
	if amount < 0 {
		panic(ErrInvalidAmount)
	}
	if !common.CalledByEntity(from) {
		panic(common.ErrWitnessFailed)
	}

	ctx := storage.GetContext()
	return transfer(ctx, from, to, amount)
}

// Approve authorizes the spender to transfer up to amount of coins from the
// owner account via TransferFrom. A repeated call overwrites the previous
// allowance. The method must be witnessed by owner.
//
// Produces Approval notification.
func Approve(owner, spender interop.Hash160, amount int) {
	if !common.IsValidAddress(owner) || !common.IsValidAddress(spender) {
		panic("invalid account")
	}
	if amount < 0 {
		panic(ErrInvalidAmount)
	}
	common.CheckOwnerWitness(owner)

	ctx := storage.GetContext()
	storage.Put(ctx, allowanceKey(owner, spender), amount)

	runtime.Notify("Approval", owner, spender, amount)
}

// TransferFrom moves amount of coins from the account of from to the account
// of to using the allowance previously granted to the spender. It returns
// false if the allowance or the balance of from is too small. The method must
// be witnessed by the spender or invoked directly by a contract deployed at
// the spender address.
//
// Produces Transfer notification.
func TransferFrom(spender, from, to interop.Hash160, amount int) bool {
	if !common.IsValidAddress(spender) || !common.IsValidAddress(from) || !common.IsValidAddress(to) {
		panic("invalid account")
	}
	if amount < 0 {
		panic(ErrInvalidAmount)
	}
	if !common.CalledByEntity(spender) {
		panic(common.ErrWitnessFailed)
	}

	ctx := storage.GetContext()
	allowed := getAllowance(ctx, from, spender)
	if allowed < amount {
		return false
	}

	if !transfer(ctx, from, to, amount) {
		return false
	}

	key := allowanceKey(from, spender)
	if allowed == amount {
		storage.Delete(ctx, key)
	} else {
		storage.Put(ctx, key, allowed-amount)
	}

	return true
}

// Version returns the version of the contract.
func Version() int {
	return common.Version
}

func transfer(ctx storage.Context, from, to interop.Hash160, amount int) bool {
	balance := getBalance(ctx, from)
	if balance < amount {
		runtime.Log("not enough coins")
		return false
	}

	if balance == amount {
		storage.Delete(ctx, balanceKey(from))
	} else {
		storage.Put(ctx, balanceKey(from), balance-amount)
	}

	addToBalance(ctx, to, amount)

	runtime.Notify("Transfer", from, to, amount)
	return true
}

func addToBalance(ctx storage.Context, holder interop.Hash160, amount int) {
	storage.Put(ctx, balanceKey(holder), getBalance(ctx, holder)+amount)
}

func getSupply(ctx storage.Context) int {
	supply := storage.Get(ctx, []byte{prefixTotalSupply})
	if supply != nil {
		return supply.(int)
	}
	return 0
}

func getBalance(ctx storage.Context, holder interop.Hash160) int {
	balance := storage.Get(ctx, balanceKey(holder))
	if balance != nil {
		return balance.(int)
	}
	return 0
}

func getAllowance(ctx storage.Context, owner, spender interop.Hash160) int {
	allowed := storage.Get(ctx, allowanceKey(owner, spender))
	if allowed != nil {
		return allowed.(int)
	}
	return 0
}

func balanceKey(holder interop.Hash160) []byte {
	return append([]byte{prefixBalance}, holder...)
}

func allowanceKey(owner, spender interop.Hash160) []byte {
	return append(append([]byte{prefixAllowance}, owner...), spender...)
}
