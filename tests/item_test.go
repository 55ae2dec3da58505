package tests

import (
	"testing"

	"github.com/nspcc-dev/neo-go/pkg/core/interop/storage"
	"github.com/nspcc-dev/neo-go/pkg/neotest"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
	"github.com/stretchr/testify/require"
)

func newItemInvoker(t *testing.T) *neotest.ContractInvoker {
	e := newExecutor(t)
	return e.CommitteeInvoker(deployItemContract(t, e))
}

func TestItemGeneric(t *testing.T) {
	c := newItemInvoker(t)

	c.Invoke(t, "AHI", "symbol")
	c.Invoke(t, 0, "decimals")
	c.Invoke(t, 0, "totalSupply")
}

func TestItemMint(t *testing.T) {
	c := newItemInvoker(t)
	acc := c.NewAccount(t)
	cAcc := c.WithSigners(acc)

	uri := randomMetaURI()
	c.WithSigners(c.NewAccount(t)).InvokeFail(t, "owner witness check failed",
		"mint", acc.ScriptHash(), uri)

	cAcc.Invoke(t, 0, "mint", acc.ScriptHash(), uri)
	cAcc.Invoke(t, 1, "mint", acc.ScriptHash(), randomMetaURI())

	c.Invoke(t, 2, "totalSupply")
	c.Invoke(t, 2, "balanceOf", acc.ScriptHash())
	c.Invoke(t, stackitem.NewByteArray(acc.ScriptHash().BytesBE()), "ownerOf", 0)
	c.Invoke(t, uri, "tokenURI", 0)

	c.InvokeFail(t, "item does not exist", "ownerOf", 2)
	c.InvokeFail(t, "item does not exist", "tokenURI", 2)
}

func TestItemBulkMint(t *testing.T) {
	c := newItemInvoker(t)
	acc := c.NewAccount(t)
	cAcc := c.WithSigners(acc)

	cAcc.InvokeFail(t, "empty mint list", "bulkMint", acc.ScriptHash(), []string{})

	uris := []string{randomMetaURI(), randomMetaURI(), randomMetaURI()}
	cAcc.Invoke(t, 0, "bulkMint", acc.ScriptHash(), uris)

	c.Invoke(t, 3, "totalSupply")
	c.Invoke(t, 3, "balanceOf", acc.ScriptHash())
	for i, uri := range uris {
		c.Invoke(t, uri, "tokenURI", i)
	}

	// Ids keep growing after a bulk mint.
	cAcc.Invoke(t, 3, "mint", acc.ScriptHash(), randomMetaURI())
}

func TestItemTokensOf(t *testing.T) {
	c := newItemInvoker(t)
	acc := c.NewAccount(t)

	c.WithSigners(acc).Invoke(t, 0, "bulkMint", acc.ScriptHash(),
		[]string{randomMetaURI(), randomMetaURI()})

	s, err := c.TestInvoke(t, "tokensOf", acc.ScriptHash())
	require.NoError(t, err)
	require.Equal(t, 1, s.Len())

	iter, ok := s.Pop().Value().(*storage.Iterator)
	require.True(t, ok)

	var ids []int64
	for iter.Next() {
		v, err := iter.Value().TryInteger()
		require.NoError(t, err)
		ids = append(ids, v.Int64())
	}
	require.ElementsMatch(t, []int64{0, 1}, ids)
}

func TestItemTransfer(t *testing.T) {
	c := newItemInvoker(t)
	from := c.NewAccount(t)
	to := c.NewAccount(t)
	cFrom := c.WithSigners(from)

	cFrom.Invoke(t, 0, "mint", from.ScriptHash(), randomMetaURI())

	// The declared holder must actually own the token.
	c.WithSigners(to).InvokeFail(t, "not item owner", "transferFrom",
		to.ScriptHash(), from.ScriptHash(), 0)

	// Unauthorized transfer fails without state changes.
	c.WithSigners(to).Invoke(t, false, "transferFrom",
		from.ScriptHash(), to.ScriptHash(), 0)
	c.Invoke(t, stackitem.NewByteArray(from.ScriptHash().BytesBE()), "ownerOf", 0)

	cFrom.Invoke(t, true, "transferFrom", from.ScriptHash(), to.ScriptHash(), 0)
	c.Invoke(t, stackitem.NewByteArray(to.ScriptHash().BytesBE()), "ownerOf", 0)
	c.Invoke(t, 0, "balanceOf", from.ScriptHash())
	c.Invoke(t, 1, "balanceOf", to.ScriptHash())
}

func TestItemApprove(t *testing.T) {
	c := newItemInvoker(t)
	owner := c.NewAccount(t)
	spender := c.NewAccount(t)
	dest := c.NewAccount(t)
	cOwner := c.WithSigners(owner)
	cSpender := c.WithSigners(spender)

	cOwner.Invoke(t, 0, "mint", owner.ScriptHash(), randomMetaURI())
	c.Invoke(t, stackitem.Null{}, "approvedOf", 0)

	cSpender.InvokeFail(t, "owner witness check failed", "approve", 0, spender.ScriptHash())

	cOwner.Invoke(t, stackitem.Null{}, "approve", 0, spender.ScriptHash())
	c.Invoke(t, stackitem.NewByteArray(spender.ScriptHash().BytesBE()), "approvedOf", 0)

	cSpender.Invoke(t, true, "transferFrom", owner.ScriptHash(), dest.ScriptHash(), 0)
	c.Invoke(t, stackitem.NewByteArray(dest.ScriptHash().BytesBE()), "ownerOf", 0)

	// Approval is consumed by the transfer.
	c.Invoke(t, stackitem.Null{}, "approvedOf", 0)
	cSpender.InvokeFail(t, "not item owner", "transferFrom",
		owner.ScriptHash(), spender.ScriptHash(), 0)
	cSpender.Invoke(t, false, "transferFrom", dest.ScriptHash(), spender.ScriptHash(), 0)
}
