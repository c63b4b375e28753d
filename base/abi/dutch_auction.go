package abi

// optional getters (started, AUCTION_DURATION, getTimeRemaining, totalCommitted) are absent on older deployments
var dutchAuctionABIJson = `[
{"type":"function","name":"startPrice","stateMutability":"view","inputs":[],"outputs":[{"type":"uint256"}]},
{"type":"function","name":"reservePrice","stateMutability":"view","inputs":[],"outputs":[{"type":"uint256"}]},
{"type":"function","name":"totalTokens","stateMutability":"view","inputs":[],"outputs":[{"type":"uint256"}]},
{"type":"function","name":"auctionEnded","stateMutability":"view","inputs":[],"outputs":[{"type":"bool"}]},
{"type":"function","name":"started","stateMutability":"view","inputs":[],"outputs":[{"type":"bool"}]},
{"type":"function","name":"seller","stateMutability":"view","inputs":[],"outputs":[{"type":"address"}]},
{"type":"function","name":"token","stateMutability":"view","inputs":[],"outputs":[{"type":"address"}]},
{"type":"function","name":"startTime","stateMutability":"view","inputs":[],"outputs":[{"type":"uint256"}]},
{"type":"function","name":"AUCTION_DURATION","stateMutability":"view","inputs":[],"outputs":[{"type":"uint256"}]},
{"type":"function","name":"getCurrentPrice","stateMutability":"view","inputs":[],"outputs":[{"type":"uint256"}]},
{"type":"function","name":"clearingPrice","stateMutability":"view","inputs":[],"outputs":[{"type":"uint256"}]},
{"type":"function","name":"getTimeRemaining","stateMutability":"view","inputs":[],"outputs":[{"type":"uint256"}]},
{"type":"function","name":"totalCommitted","stateMutability":"view","inputs":[],"outputs":[{"type":"uint256"}]},
{"type":"function","name":"bids","stateMutability":"view","inputs":[{"type":"address","name":"bidder"}],"outputs":[{"type":"uint256"}]},
{"type":"function","name":"bid","stateMutability":"payable","inputs":[],"outputs":[]},
{"type":"function","name":"claimTokens","stateMutability":"nonpayable","inputs":[],"outputs":[]},
{"type":"function","name":"start","stateMutability":"nonpayable","inputs":[],"outputs":[]},
{"type":"function","name":"endAuction","stateMutability":"nonpayable","inputs":[],"outputs":[]},
{"type":"function","name":"burnUnsoldTokens","stateMutability":"nonpayable","inputs":[],"outputs":[]},
{"type":"function","name":"withdrawFunds","stateMutability":"nonpayable","inputs":[],"outputs":[]},
{"type":"function","name":"refund","stateMutability":"nonpayable","inputs":[],"outputs":[]}
]`
