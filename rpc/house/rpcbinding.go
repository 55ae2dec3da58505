// Package house contains RPC wrappers for AuctionHouse contract.
package house

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/google/uuid"
	"github.com/nspcc-dev/neo-go/pkg/core/transaction"
	"github.com/nspcc-dev/neo-go/pkg/neorpc/result"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/unwrap"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
)

// HouseAuction is a contract-specific house.Auction type used by its methods.
type HouseAuction struct {
	Seller     util.Uint160
	Asset      util.Uint160
	TokenID    *big.Int
	EndTime    *big.Int
	HighestBid *big.Int
	// Bidder is empty until the first bid is placed.
	Bidder   []byte
	Archived bool
}

// AuctionCreatedEvent represents "AuctionCreated" event emitted by the contract.
type AuctionCreatedEvent struct {
	ID         *big.Int
	Seller     util.Uint160
	Asset      util.Uint160
	TokenID    *big.Int
	StartPrice *big.Int
	EndTime    *big.Int
}

// BidPlacedEvent represents "BidPlaced" event emitted by the contract.
type BidPlacedEvent struct {
	ID     *big.Int
	Bidder util.Uint160
	Amount *big.Int
}

// AuctionCancelledEvent represents "AuctionCancelled" event emitted by the contract.
type AuctionCancelledEvent struct {
	ID *big.Int
}

// AuctionEndedEvent represents "AuctionEnded" event emitted by the contract.
type AuctionEndedEvent struct {
	ID *big.Int
}

// ItemClaimedEvent represents "ItemClaimed" event emitted by the contract.
type ItemClaimedEvent struct {
	ID     *big.Int
	Bidder util.Uint160
	Amount *big.Int
}

// Invoker is used by ContractReader to call various safe methods.
type Invoker interface {
	Call(contract util.Uint160, operation string, params ...any) (*result.Invoke, error)
	CallAndExpandIterator(contract util.Uint160, method string, maxItems int, params ...any) (*result.Invoke, error)
	TerminateSession(sessionID uuid.UUID) error
	TraverseIterator(sessionID uuid.UUID, iterator *result.Iterator, num int) ([]stackitem.Item, error)
}

// Actor is used by Contract to call state-changing methods.
type Actor interface {
	Invoker

	MakeCall(contract util.Uint160, method string, params ...any) (*transaction.Transaction, error)
	MakeRun(script []byte) (*transaction.Transaction, error)
	MakeUnsignedCall(contract util.Uint160, method string, attrs []transaction.Attribute, params ...any) (*transaction.Transaction, error)
	MakeUnsignedRun(script []byte, attrs []transaction.Attribute) (*transaction.Transaction, error)
	SendCall(contract util.Uint160, method string, params ...any) (util.Uint256, uint32, error)
	SendRun(script []byte) (util.Uint256, uint32, error)
}

// ContractReader implements safe contract methods.
type ContractReader struct {
	invoker Invoker
	hash    util.Uint160
}

// Contract implements all contract methods.
type Contract struct {
	ContractReader
	actor Actor
	hash  util.Uint160
}

// NewReader creates an instance of ContractReader using provided contract hash and the given Invoker.
func NewReader(invoker Invoker, hash util.Uint160) *ContractReader {
	return &ContractReader{invoker, hash}
}

// New creates an instance of Contract using provided contract hash and the given Actor.
func New(actor Actor, hash util.Uint160) *Contract {
	return &Contract{ContractReader{actor, hash}, actor, hash}
}

// Admin invokes `admin` method of contract.
func (c *ContractReader) Admin() (util.Uint160, error) {
	return unwrap.Uint160(c.invoker.Call(c.hash, "admin"))
}

// IsManager invokes `isManager` method of contract.
func (c *ContractReader) IsManager(account util.Uint160) (bool, error) {
	return unwrap.Bool(c.invoker.Call(c.hash, "isManager", account))
}

// FeeBp invokes `feeBp` method of contract.
func (c *ContractReader) FeeBp() (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "feeBp"))
}

// CollectedFees invokes `collectedFees` method of contract.
func (c *ContractReader) CollectedFees() (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "collectedFees"))
}

// CoinAddress invokes `coinAddress` method of contract.
func (c *ContractReader) CoinAddress() (util.Uint160, error) {
	return unwrap.Uint160(c.invoker.Call(c.hash, "coinAddress"))
}

// AuctionCount invokes `auctionCount` method of contract.
func (c *ContractReader) AuctionCount() (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "auctionCount"))
}

// GetAuction invokes `getAuction` method of contract.
func (c *ContractReader) GetAuction(id *big.Int) (*HouseAuction, error) {
	return itemToHouseAuction(unwrap.Item(c.invoker.Call(c.hash, "getAuction", id)))
}

// Auctions invokes `auctions` method of contract.
func (c *ContractReader) Auctions() (uuid.UUID, result.Iterator, error) {
	return unwrap.SessionIterator(c.invoker.Call(c.hash, "auctions"))
}

// AuctionsExpanded is similar to Auctions (uses the same contract
// method), but can be useful if the server used doesn't support sessions and
// doesn't expand iterators. It creates a script that will get the specified
// number of result items from the iterator right in the VM and return them to
// you. It's only limited by VM stack and GAS available for RPC invocations.
func (c *ContractReader) AuctionsExpanded(_numOfIteratorItems int) ([]stackitem.Item, error) {
	return unwrap.Array(c.invoker.CallAndExpandIterator(c.hash, "auctions", _numOfIteratorItems))
}

// Version invokes `version` method of contract.
func (c *ContractReader) Version() (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "version"))
}

// SetAdmin creates a transaction invoking `setAdmin` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) SetAdmin(newAdmin util.Uint160) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "setAdmin", newAdmin)
}

// SetAdminTransaction creates a transaction invoking `setAdmin` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) SetAdminTransaction(newAdmin util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "setAdmin", newAdmin)
}

// SetAdminUnsigned creates a transaction invoking `setAdmin` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) SetAdminUnsigned(newAdmin util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "setAdmin", nil, newAdmin)
}

// AddManager creates a transaction invoking `addManager` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) AddManager(account util.Uint160) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "addManager", account)
}

// AddManagerTransaction creates a transaction invoking `addManager` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) AddManagerTransaction(account util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "addManager", account)
}

// AddManagerUnsigned creates a transaction invoking `addManager` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) AddManagerUnsigned(account util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "addManager", nil, account)
}

// RemoveManager creates a transaction invoking `removeManager` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) RemoveManager(account util.Uint160) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "removeManager", account)
}

// RemoveManagerTransaction creates a transaction invoking `removeManager` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) RemoveManagerTransaction(account util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "removeManager", account)
}

// RemoveManagerUnsigned creates a transaction invoking `removeManager` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) RemoveManagerUnsigned(account util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "removeManager", nil, account)
}

// SetFee creates a transaction invoking `setFee` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) SetFee(bp *big.Int) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "setFee", bp)
}

// SetFeeTransaction creates a transaction invoking `setFee` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) SetFeeTransaction(bp *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "setFee", bp)
}

// SetFeeUnsigned creates a transaction invoking `setFee` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) SetFeeUnsigned(bp *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "setFee", nil, bp)
}

// WithdrawFees creates a transaction invoking `withdrawFees` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) WithdrawFees(amount *big.Int) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "withdrawFees", amount)
}

// WithdrawFeesTransaction creates a transaction invoking `withdrawFees` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) WithdrawFeesTransaction(amount *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "withdrawFees", amount)
}

// WithdrawFeesUnsigned creates a transaction invoking `withdrawFees` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) WithdrawFeesUnsigned(amount *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "withdrawFees", nil, amount)
}

// CreateAuction creates a transaction invoking `createAuction` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) CreateAuction(asset util.Uint160, tokenID *big.Int, startPrice *big.Int, endTime *big.Int) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "createAuction", asset, tokenID, startPrice, endTime)
}

// CreateAuctionTransaction creates a transaction invoking `createAuction` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) CreateAuctionTransaction(asset util.Uint160, tokenID *big.Int, startPrice *big.Int, endTime *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "createAuction", asset, tokenID, startPrice, endTime)
}

// CreateAuctionUnsigned creates a transaction invoking `createAuction` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) CreateAuctionUnsigned(asset util.Uint160, tokenID *big.Int, startPrice *big.Int, endTime *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "createAuction", nil, asset, tokenID, startPrice, endTime)
}

// LowerPrice creates a transaction invoking `lowerPrice` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) LowerPrice(id *big.Int, newPrice *big.Int) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "lowerPrice", id, newPrice)
}

// LowerPriceTransaction creates a transaction invoking `lowerPrice` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) LowerPriceTransaction(id *big.Int, newPrice *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "lowerPrice", id, newPrice)
}

// LowerPriceUnsigned creates a transaction invoking `lowerPrice` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) LowerPriceUnsigned(id *big.Int, newPrice *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "lowerPrice", nil, id, newPrice)
}

// PlaceBid creates a transaction invoking `placeBid` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) PlaceBid(id *big.Int, bidder util.Uint160, amount *big.Int) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "placeBid", id, bidder, amount)
}

// PlaceBidTransaction creates a transaction invoking `placeBid` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) PlaceBidTransaction(id *big.Int, bidder util.Uint160, amount *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "placeBid", id, bidder, amount)
}

// PlaceBidUnsigned creates a transaction invoking `placeBid` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) PlaceBidUnsigned(id *big.Int, bidder util.Uint160, amount *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "placeBid", nil, id, bidder, amount)
}

// CancelAuction creates a transaction invoking `cancelAuction` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) CancelAuction(id *big.Int) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "cancelAuction", id)
}

// CancelAuctionTransaction creates a transaction invoking `cancelAuction` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) CancelAuctionTransaction(id *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "cancelAuction", id)
}

// CancelAuctionUnsigned creates a transaction invoking `cancelAuction` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) CancelAuctionUnsigned(id *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "cancelAuction", nil, id)
}

// ForceEndAuction creates a transaction invoking `forceEndAuction` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) ForceEndAuction(id *big.Int) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "forceEndAuction", id)
}

// ForceEndAuctionTransaction creates a transaction invoking `forceEndAuction` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) ForceEndAuctionTransaction(id *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "forceEndAuction", id)
}

// ForceEndAuctionUnsigned creates a transaction invoking `forceEndAuction` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) ForceEndAuctionUnsigned(id *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "forceEndAuction", nil, id)
}

// ClaimItems creates a transaction invoking `claimItems` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) ClaimItems(id *big.Int) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "claimItems", id)
}

// ClaimItemsTransaction creates a transaction invoking `claimItems` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) ClaimItemsTransaction(id *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "claimItems", id)
}

// ClaimItemsUnsigned creates a transaction invoking `claimItems` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) ClaimItemsUnsigned(id *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "claimItems", nil, id)
}

// Update creates a transaction invoking `update` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) Update(script []byte, manifest []byte, data any) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "update", script, manifest, data)
}

// UpdateTransaction creates a transaction invoking `update` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) UpdateTransaction(script []byte, manifest []byte, data any) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "update", script, manifest, data)
}

// UpdateUnsigned creates a transaction invoking `update` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) UpdateUnsigned(script []byte, manifest []byte, data any) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "update", nil, script, manifest, data)
}

// itemToHouseAuction converts stack item into *HouseAuction.
func itemToHouseAuction(item stackitem.Item, err error) (*HouseAuction, error) {
	if err != nil {
		return nil, err
	}
	var res = new(HouseAuction)
	err = res.FromStackItem(item)
	return res, err
}

// FromStackItem retrieves fields of HouseAuction from the given
// [stackitem.Item] or returns an error if it's not possible to do to so.
func (res *HouseAuction) FromStackItem(item stackitem.Item) error {
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 7 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err   error
	)
	index++
	res.Seller, err = func(item stackitem.Item) (util.Uint160, error) {
		b, err := item.TryBytes()
		if err != nil {
			return util.Uint160{}, err
		}
		u, err := util.Uint160DecodeBytesBE(b)
		if err != nil {
			return util.Uint160{}, err
		}
		return u, nil
	}(arr[index])
	if err != nil {
		return fmt.Errorf("field Seller: %w", err)
	}

	index++
	res.Asset, err = func(item stackitem.Item) (util.Uint160, error) {
		b, err := item.TryBytes()
		if err != nil {
			return util.Uint160{}, err
		}
		u, err := util.Uint160DecodeBytesBE(b)
		if err != nil {
			return util.Uint160{}, err
		}
		return u, nil
	}(arr[index])
	if err != nil {
		return fmt.Errorf("field Asset: %w", err)
	}

	index++
	res.TokenID, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field TokenID: %w", err)
	}

	index++
	res.EndTime, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field EndTime: %w", err)
	}

	index++
	res.HighestBid, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field HighestBid: %w", err)
	}

	index++
	res.Bidder, err = arr[index].TryBytes()
	if err != nil {
		return fmt.Errorf("field Bidder: %w", err)
	}

	index++
	res.Archived, err = arr[index].TryBool()
	if err != nil {
		return fmt.Errorf("field Archived: %w", err)
	}

	return nil
}

// AuctionCreatedEventsFromApplicationLog retrieves a set of all emitted events
// with "AuctionCreated" name from the provided [result.ApplicationLog].
func AuctionCreatedEventsFromApplicationLog(log *result.ApplicationLog) ([]*AuctionCreatedEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*AuctionCreatedEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "AuctionCreated" {
				continue
			}
			event := new(AuctionCreatedEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize AuctionCreatedEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to AuctionCreatedEvent or
// returns an error if it's not possible to do to so.
func (e *AuctionCreatedEvent) FromStackItem(item *stackitem.Array) error {
	if item == nil {
		return errors.New("nil item")
	}
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 6 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err   error
	)
	index++
	e.ID, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field ID: %w", err)
	}

	index++
	e.Seller, err = func(item stackitem.Item) (util.Uint160, error) {
		b, err := item.TryBytes()
		if err != nil {
			return util.Uint160{}, err
		}
		u, err := util.Uint160DecodeBytesBE(b)
		if err != nil {
			return util.Uint160{}, err
		}
		return u, nil
	}(arr[index])
	if err != nil {
		return fmt.Errorf("field Seller: %w", err)
	}

	index++
	e.Asset, err = func(item stackitem.Item) (util.Uint160, error) {
		b, err := item.TryBytes()
		if err != nil {
			return util.Uint160{}, err
		}
		u, err := util.Uint160DecodeBytesBE(b)
		if err != nil {
			return util.Uint160{}, err
		}
		return u, nil
	}(arr[index])
	if err != nil {
		return fmt.Errorf("field Asset: %w", err)
	}

	index++
	e.TokenID, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field TokenID: %w", err)
	}

	index++
	e.StartPrice, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field StartPrice: %w", err)
	}

	index++
	e.EndTime, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field EndTime: %w", err)
	}

	return nil
}

// BidPlacedEventsFromApplicationLog retrieves a set of all emitted events
// with "BidPlaced" name from the provided [result.ApplicationLog].
func BidPlacedEventsFromApplicationLog(log *result.ApplicationLog) ([]*BidPlacedEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*BidPlacedEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "BidPlaced" {
				continue
			}
			event := new(BidPlacedEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize BidPlacedEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to BidPlacedEvent or
// returns an error if it's not possible to do to so.
func (e *BidPlacedEvent) FromStackItem(item *stackitem.Array) error {
	if item == nil {
		return errors.New("nil item")
	}
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 3 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err   error
	)
	index++
	e.ID, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field ID: %w", err)
	}

	index++
	e.Bidder, err = func(item stackitem.Item) (util.Uint160, error) {
		b, err := item.TryBytes()
		if err != nil {
			return util.Uint160{}, err
		}
		u, err := util.Uint160DecodeBytesBE(b)
		if err != nil {
			return util.Uint160{}, err
		}
		return u, nil
	}(arr[index])
	if err != nil {
		return fmt.Errorf("field Bidder: %w", err)
	}

	index++
	e.Amount, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Amount: %w", err)
	}

	return nil
}

// AuctionCancelledEventsFromApplicationLog retrieves a set of all emitted events
// with "AuctionCancelled" name from the provided [result.ApplicationLog].
func AuctionCancelledEventsFromApplicationLog(log *result.ApplicationLog) ([]*AuctionCancelledEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*AuctionCancelledEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "AuctionCancelled" {
				continue
			}
			event := new(AuctionCancelledEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize AuctionCancelledEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to AuctionCancelledEvent or
// returns an error if it's not possible to do to so.
func (e *AuctionCancelledEvent) FromStackItem(item *stackitem.Array) error {
	if item == nil {
		return errors.New("nil item")
	}
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 1 {
		return errors.New("wrong number of structure elements")
	}

	var err error
	e.ID, err = arr[0].TryInteger()
	if err != nil {
		return fmt.Errorf("field ID: %w", err)
	}

	return nil
}

// AuctionEndedEventsFromApplicationLog retrieves a set of all emitted events
// with "AuctionEnded" name from the provided [result.ApplicationLog].
func AuctionEndedEventsFromApplicationLog(log *result.ApplicationLog) ([]*AuctionEndedEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*AuctionEndedEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "AuctionEnded" {
				continue
			}
			event := new(AuctionEndedEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize AuctionEndedEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to AuctionEndedEvent or
// returns an error if it's not possible to do to so.
func (e *AuctionEndedEvent) FromStackItem(item *stackitem.Array) error {
	if item == nil {
		return errors.New("nil item")
	}
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 1 {
		return errors.New("wrong number of structure elements")
	}

	var err error
	e.ID, err = arr[0].TryInteger()
	if err != nil {
		return fmt.Errorf("field ID: %w", err)
	}

	return nil
}

// ItemClaimedEventsFromApplicationLog retrieves a set of all emitted events
// with "ItemClaimed" name from the provided [result.ApplicationLog].
func ItemClaimedEventsFromApplicationLog(log *result.ApplicationLog) ([]*ItemClaimedEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*ItemClaimedEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "ItemClaimed" {
				continue
			}
			event := new(ItemClaimedEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize ItemClaimedEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to ItemClaimedEvent or
// returns an error if it's not possible to do to so.
func (e *ItemClaimedEvent) FromStackItem(item *stackitem.Array) error {
	if item == nil {
		return errors.New("nil item")
	}
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 3 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err   error
	)
	index++
	e.ID, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field ID: %w", err)
	}

	index++
	e.Bidder, err = func(item stackitem.Item) (util.Uint160, error) {
		b, err := item.TryBytes()
		if err != nil {
			return util.Uint160{}, err
		}
		u, err := util.Uint160DecodeBytesBE(b)
		if err != nil {
			return util.Uint160{}, err
		}
		return u, nil
	}(arr[index])
	if err != nil {
		return fmt.Errorf("field Bidder: %w", err)
	}

	index++
	e.Amount, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Amount: %w", err)
	}

	return nil
}
