/*
House contract is the custodial auction engine of the suite.

A seller lists an item by handing custody of the token to the house for the
whole lifetime of the auction. Bidders escrow coins with the house through
the coin contract's delegated transfer: every accepted bid first pulls the
new escrow, then refunds the displaced bidder in full, so the house never
holds more than one bidder's escrow per auction. An auction resolves through
exactly one of three terminal paths: cancellation (no sale, full unwind),
forced early end by the seller (requires a bid) or claim after the deadline
(anyone may trigger it). Settlement splits the winning bid between the
seller and the house fee balance using truncating basis-point arithmetic,
so the two cuts always sum to the bid exactly, and moves the item to the
winning bidder. Archived records stay in storage as immutable history.

The house is governed by a single admin and a set of managers. The admin is
always a manager; replacing the admin strips the old one of both rights.
Managers configure the fee and withdraw collected fees to their own account.

# Contract notifications

AuctionCreated notification:

	AuctionCreated:
	  - name: id
	    type: Integer
	  - name: seller
	    type: Hash160
	  - name: asset
	    type: Hash160
	  - name: tokenID
	    type: Integer
	  - name: startPrice
	    type: Integer
	  - name: endTime
	    type: Integer

BidPlaced notification:

	BidPlaced:
	  - name: id
	    type: Integer
	  - name: bidder
	    type: Hash160
	  - name: amount
	    type: Integer

AuctionCancelled notification:

	AuctionCancelled:
	  - name: id
	    type: Integer

AuctionEnded notification:

	AuctionEnded:
	  - name: id
	    type: Integer

ItemClaimed notification:

	ItemClaimed:
	  - name: id
	    type: Integer
	  - name: bidder
	    type: Hash160
	  - name: amount
	    type: Integer
*/
package house
