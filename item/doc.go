/*
Item contract is the non-fungible asset registry of the auction house suite.

Each item carries an opaque metadata reference (typically an IPFS URI) fixed
at mint time and an integer id assigned from a monotonically growing counter.
Anyone can mint items to their own account, one by one or in bulk.

Transfers follow the authorization model the auction house relies on: the
owner moves a token directly, or pre-authorizes a single spender per token
with Approve, and that spender (an account or a contract, the house being
the intended one) performs TransferFrom. A successful transfer consumes the
approval, so listing an item for auction requires a fresh approval each time.

# Contract notifications

Transfer notification:

	Transfer:
	  - name: from
	    type: Hash160
	  - name: to
	    type: Hash160
	  - name: tokenID
	    type: Integer

Approval notification:

	Approval:
	  - name: owner
	    type: Hash160
	  - name: spender
	    type: Hash160
	  - name: tokenID
	    type: Integer
*/
package item
