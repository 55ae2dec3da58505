/*
Coin contract is the fungible balance ledger of the auction house suite.

Coin stores one balance record per account. Anyone can replenish their own
balance with the Mint method, which makes the coin suitable for test and
demo networks where bidders need funds on demand. Besides the direct
Transfer method the contract implements a two-step delegated transfer:
a holder authorizes a spender for a bounded amount with Approve, the
spender later moves up to that amount with TransferFrom. The auction house
contract uses exactly this mechanism to pull bid escrow from bidders, so
a bidder never hands funds to the house before a bid is accepted.

A transfer initiated by a contract from its own account requires no
witness: the calling script hash stands for the holder. This is how the
house refunds displaced bidders and pays out settlements.

# Contract notifications

Transfer notification:

	Transfer:
	  - name: from
	    type: Hash160
	  - name: to
	    type: Hash160
	  - name: amount
	    type: Integer

Approval notification:

	Approval:
	  - name: owner
	    type: Hash160
	  - name: spender
	    type: Hash160
	  - name: amount
	    type: Integer
*/
package coin
