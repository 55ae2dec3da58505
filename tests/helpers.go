package tests

import (
	"math/rand"
	"path"
	"testing"

	"github.com/mr-tron/base58"
	"github.com/nspcc-dev/neo-go/pkg/neotest"
	"github.com/nspcc-dev/neo-go/pkg/neotest/chain"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
	"github.com/plausibly/auction-house-dapp/rpc/house"
	"github.com/stretchr/testify/require"
)

const (
	coinPath  = "../coin"
	itemPath  = "../item"
	housePath = "../house"
)

const hourMS = 3_600_000

func newExecutor(t *testing.T) *neotest.Executor {
	bc, acc := chain.NewSingle(t)
	return neotest.NewExecutor(t, bc, acc, acc)
}

// deployCoinContract deploys the coin contract owned by the committee and
// returns its hash.
func deployCoinContract(t *testing.T, e *neotest.Executor) util.Uint160 {
	c := neotest.CompileFile(t, e.CommitteeHash, coinPath, path.Join(coinPath, "config.yml"))
	e.DeployContract(t, c, []interface{}{e.CommitteeHash})
	return c.Hash
}

// deployItemContract deploys the item contract owned by the committee and
// returns its hash.
func deployItemContract(t *testing.T, e *neotest.Executor) util.Uint160 {
	c := neotest.CompileFile(t, e.CommitteeHash, itemPath, path.Join(itemPath, "config.yml"))
	e.DeployContract(t, c, []interface{}{e.CommitteeHash})
	return c.Hash
}

// deployHouseContract deploys the house contract administered by the
// committee and bound to the given payment coin.
func deployHouseContract(t *testing.T, e *neotest.Executor, coinHash util.Uint160) util.Uint160 {
	c := neotest.CompileFile(t, e.CommitteeHash, housePath, path.Join(housePath, "config.yml"))
	e.DeployContract(t, c, []interface{}{e.CommitteeHash, coinHash})
	return c.Hash
}

// houseEnv bundles the three deployed contracts with committee-signed
// invokers for each of them.
type houseEnv struct {
	e *neotest.Executor

	coinHash  util.Uint160
	itemHash  util.Uint160
	houseHash util.Uint160

	coin  *neotest.ContractInvoker
	item  *neotest.ContractInvoker
	house *neotest.ContractInvoker
}

func newHouseEnv(t *testing.T) *houseEnv {
	e := newExecutor(t)

	coinHash := deployCoinContract(t, e)
	itemHash := deployItemContract(t, e)
	houseHash := deployHouseContract(t, e, coinHash)

	return &houseEnv{
		e:         e,
		coinHash:  coinHash,
		itemHash:  itemHash,
		houseHash: houseHash,
		coin:      e.CommitteeInvoker(coinHash),
		item:      e.CommitteeInvoker(itemHash),
		house:     e.CommitteeInvoker(houseHash),
	}
}

// fundAccount mints coins to acc and approves the house to spend up to the
// same amount on its behalf.
func (env *houseEnv) fundAccount(t *testing.T, acc neotest.Signer, amount int64) {
	c := env.coin.WithSigners(acc)
	c.Invoke(t, stackitem.Null{}, "mint", acc.ScriptHash(), amount)
	c.Invoke(t, stackitem.Null{}, "approve", acc.ScriptHash(), env.houseHash, amount)
}

// mintItem mints a fresh item to acc and returns its ID.
func (env *houseEnv) mintItem(t *testing.T, acc neotest.Signer) int64 {
	s, err := env.item.TestInvoke(t, "totalSupply")
	require.NoError(t, err)
	id := s.Pop().BigInt().Int64()

	env.item.WithSigners(acc).Invoke(t, id, "mint", acc.ScriptHash(), randomMetaURI())
	return id
}

// listItem mints an item to seller, approves the house for it and opens an
// auction, returning the auction ID.
func (env *houseEnv) listItem(t *testing.T, seller neotest.Signer, startPrice int64, endTime int64) int64 {
	tokenID := env.mintItem(t, seller)
	env.item.WithSigners(seller).Invoke(t, stackitem.Null{}, "approve", tokenID, env.houseHash)

	s, err := env.house.TestInvoke(t, "auctionCount")
	require.NoError(t, err)
	id := s.Pop().BigInt().Int64()

	env.house.WithSigners(seller).Invoke(t, id, "createAuction",
		env.itemHash, tokenID, startPrice, endTime)
	return id
}

// now returns the timestamp of the topmost block in milliseconds.
func (env *houseEnv) now(t *testing.T) uint64 {
	return env.e.TopBlock(t).Timestamp
}

// passTime appends an empty block with the given timestamp so that
// subsequent transactions execute after it.
func (env *houseEnv) passTime(t *testing.T, ts uint64) {
	b := env.e.NewUnsignedBlock(t)
	b.Timestamp = ts
	require.NoError(t, env.e.Chain.AddBlock(env.e.SignBlock(b)))
}

func (env *houseEnv) coinBalance(t *testing.T, acc util.Uint160) int64 {
	s, err := env.coin.TestInvoke(t, "balanceOf", acc)
	require.NoError(t, err)
	return s.Pop().BigInt().Int64()
}

func (env *houseEnv) itemOwner(t *testing.T, tokenID int64) util.Uint160 {
	s, err := env.item.TestInvoke(t, "ownerOf", tokenID)
	require.NoError(t, err)
	u, err := util.Uint160DecodeBytesBE(s.Pop().Bytes())
	require.NoError(t, err)
	return u
}

func (env *houseEnv) collectedFees(t *testing.T) int64 {
	s, err := env.house.TestInvoke(t, "collectedFees")
	require.NoError(t, err)
	return s.Pop().BigInt().Int64()
}

func (env *houseEnv) getAuction(t *testing.T, id int64) *house.HouseAuction {
	s, err := env.house.TestInvoke(t, "getAuction", id)
	require.NoError(t, err)

	a := new(house.HouseAuction)
	require.NoError(t, a.FromStackItem(s.Pop().Item()))
	return a
}

func util160(t *testing.T, b []byte) util.Uint160 {
	u, err := util.Uint160DecodeBytesBE(b)
	require.NoError(t, err)
	return u
}

func randomMetaURI() string {
	data := make([]byte, 32)
	rand.Read(data)
	return "ipfs://" + base58.Encode(data)
}
