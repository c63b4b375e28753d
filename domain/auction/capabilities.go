package auction

import "github.com/x-xyz/auctiond/domain"

// Capabilities is the set of actions currently offered to the caller. It
// shapes affordances only, the contract remains the authority.
type Capabilities struct {
	Connected            bool `json:"connected"`
	NetworkOK            bool `json:"networkOk"`
	IsSeller             bool `json:"isSeller"`
	IsPrivilegedOperator bool `json:"isPrivilegedOperator"`

	CanBid        bool `json:"canBid"`
	CanClaim      bool `json:"canClaim"`
	CanStart      bool `json:"canStart"`
	CanEnd        bool `json:"canEnd"`
	CanBurnUnsold bool `json:"canBurnUnsold"`
	CanWithdraw   bool `json:"canWithdraw"`
	CanRefund     bool `json:"canRefund"`
}

// Gate derives the capabilities of caller (empty when no wallet) from s.
// A nil snapshot grants identity flags only.
func Gate(s *Snapshot, caller domain.Address, chainOK bool, operator domain.Address) Capabilities {
	connected := !caller.IsEmpty()
	c := Capabilities{
		Connected:            connected,
		NetworkOK:            chainOK,
		IsPrivilegedOperator: connected && !operator.IsEmpty() && caller.Equals(operator),
	}
	if s == nil {
		return c
	}

	c.IsSeller = connected && !s.Seller.IsEmpty() && caller.Equals(s.Seller)
	active := connected && chainOK

	c.CanBid = active && s.Started && !s.AuctionEnded && !c.IsSeller
	c.CanClaim = active && s.AuctionEnded
	c.CanStart = c.IsSeller && !s.Started
	c.CanEnd = c.IsSeller && !s.AuctionEnded && (s.TimeRemaining == 0 || s.FullySold())
	c.CanBurnUnsold = c.IsSeller && s.AuctionEnded
	c.CanWithdraw = c.IsSeller && s.AuctionEnded
	c.CanRefund = active && s.AuctionEnded && s.RefundAvailable
	return c
}
