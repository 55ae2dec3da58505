package tests

import (
	"testing"

	"github.com/nspcc-dev/neo-go/pkg/neotest"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
)

func newCoinInvoker(t *testing.T) *neotest.ContractInvoker {
	e := newExecutor(t)
	return e.CommitteeInvoker(deployCoinContract(t, e))
}

func TestCoinGeneric(t *testing.T) {
	c := newCoinInvoker(t)

	c.Invoke(t, "AUC", "symbol")
	c.Invoke(t, 18, "decimals")
	c.Invoke(t, 0, "totalSupply")
	c.Invoke(t, 0, "balanceOf", c.NewAccount(t).ScriptHash())
}

func TestCoinMint(t *testing.T) {
	c := newCoinInvoker(t)
	acc := c.NewAccount(t)
	cAcc := c.WithSigners(acc)

	cAcc.InvokeFail(t, "invalid amount", "mint", acc.ScriptHash(), 0)
	cAcc.InvokeFail(t, "invalid amount", "mint", acc.ScriptHash(), -5)

	other := c.NewAccount(t)
	cAcc.InvokeFail(t, "witness check failed", "mint", other.ScriptHash(), 100)

	cAcc.Invoke(t, stackitem.Null{}, "mint", acc.ScriptHash(), 100)
	c.Invoke(t, 100, "balanceOf", acc.ScriptHash())
	c.Invoke(t, 100, "totalSupply")

	cAcc.Invoke(t, stackitem.Null{}, "mint", acc.ScriptHash(), 50)
	c.Invoke(t, 150, "balanceOf", acc.ScriptHash())
	c.Invoke(t, 150, "totalSupply")
}

func TestCoinTransfer(t *testing.T) {
	c := newCoinInvoker(t)
	from := c.NewAccount(t)
	to := c.NewAccount(t)
	cFrom := c.WithSigners(from)

	cFrom.Invoke(t, stackitem.Null{}, "mint", from.ScriptHash(), 100)

	cFrom.InvokeFail(t, "invalid amount", "transfer", from.ScriptHash(), to.ScriptHash(), -1)
	c.WithSigners(to).InvokeFail(t, "witness check failed", "transfer",
		from.ScriptHash(), to.ScriptHash(), 10)

	cFrom.Invoke(t, true, "transfer", from.ScriptHash(), to.ScriptHash(), 30)
	c.Invoke(t, 70, "balanceOf", from.ScriptHash())
	c.Invoke(t, 30, "balanceOf", to.ScriptHash())

	// Not enough coins, balances stay intact.
	cFrom.Invoke(t, false, "transfer", from.ScriptHash(), to.ScriptHash(), 71)
	c.Invoke(t, 70, "balanceOf", from.ScriptHash())
	c.Invoke(t, 30, "balanceOf", to.ScriptHash())

	// Total supply is unaffected by transfers.
	c.Invoke(t, 100, "totalSupply")

	// Emptying the balance completely removes the record.
	cFrom.Invoke(t, true, "transfer", from.ScriptHash(), to.ScriptHash(), 70)
	c.Invoke(t, 0, "balanceOf", from.ScriptHash())
	c.Invoke(t, 100, "balanceOf", to.ScriptHash())
}

func TestCoinApprove(t *testing.T) {
	c := newCoinInvoker(t)
	owner := c.NewAccount(t)
	spender := c.NewAccount(t)
	cOwner := c.WithSigners(owner)

	c.WithSigners(spender).InvokeFail(t, "owner witness check failed", "approve",
		owner.ScriptHash(), spender.ScriptHash(), 100)
	cOwner.InvokeFail(t, "invalid amount", "approve",
		owner.ScriptHash(), spender.ScriptHash(), -1)

	cOwner.Invoke(t, stackitem.Null{}, "approve", owner.ScriptHash(), spender.ScriptHash(), 100)
	c.Invoke(t, 100, "allowance", owner.ScriptHash(), spender.ScriptHash())

	// A repeated call overwrites the allowance instead of topping it up.
	cOwner.Invoke(t, stackitem.Null{}, "approve", owner.ScriptHash(), spender.ScriptHash(), 40)
	c.Invoke(t, 40, "allowance", owner.ScriptHash(), spender.ScriptHash())
}

func TestCoinTransferFrom(t *testing.T) {
	c := newCoinInvoker(t)
	owner := c.NewAccount(t)
	spender := c.NewAccount(t)
	dest := c.NewAccount(t)
	cOwner := c.WithSigners(owner)
	cSpender := c.WithSigners(spender)

	cOwner.Invoke(t, stackitem.Null{}, "mint", owner.ScriptHash(), 100)
	cOwner.Invoke(t, stackitem.Null{}, "approve", owner.ScriptHash(), spender.ScriptHash(), 60)

	cOwner.InvokeFail(t, "witness check failed", "transferFrom",
		spender.ScriptHash(), owner.ScriptHash(), dest.ScriptHash(), 10)

	cSpender.Invoke(t, true, "transferFrom",
		spender.ScriptHash(), owner.ScriptHash(), dest.ScriptHash(), 50)
	c.Invoke(t, 50, "balanceOf", owner.ScriptHash())
	c.Invoke(t, 50, "balanceOf", dest.ScriptHash())
	c.Invoke(t, 10, "allowance", owner.ScriptHash(), spender.ScriptHash())

	// The remaining allowance is not enough.
	cSpender.Invoke(t, false, "transferFrom",
		spender.ScriptHash(), owner.ScriptHash(), dest.ScriptHash(), 11)
	c.Invoke(t, 50, "balanceOf", owner.ScriptHash())

	// Exhausting the allowance removes the record.
	cSpender.Invoke(t, true, "transferFrom",
		spender.ScriptHash(), owner.ScriptHash(), dest.ScriptHash(), 10)
	c.Invoke(t, 0, "allowance", owner.ScriptHash(), spender.ScriptHash())

	// Allowance exceeding the actual balance does not help.
	cOwner.Invoke(t, stackitem.Null{}, "approve", owner.ScriptHash(), spender.ScriptHash(), 1000)
	cSpender.Invoke(t, false, "transferFrom",
		spender.ScriptHash(), owner.ScriptHash(), dest.ScriptHash(), 41)
	c.Invoke(t, 1000, "allowance", owner.ScriptHash(), spender.ScriptHash())
}
