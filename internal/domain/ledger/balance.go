package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/motodesk/backend/internal/domain/shared/valueobject"
)

// BalanceOf folds over a transaction log, summing +amount for IN entries and
// -amount for OUT entries. When channel is non-nil the fold is restricted to
// entries settling on that channel. The result is a pure function of the log:
// there is no cached balance anywhere in the system.
func BalanceOf(txs []Transaction, channel *valueobject.PaymentChannel) decimal.Decimal {
	balance := decimal.Zero
	for i := range txs {
		if channel != nil && txs[i].Channel != *channel {
			continue
		}
		balance = balance.Add(txs[i].SignedAmount())
	}
	return balance
}

// BalanceByChannel folds the log once per channel, returning the balance of
// each settlement medium keyed by channel code.
func BalanceByChannel(txs []Transaction) map[valueobject.PaymentChannel]decimal.Decimal {
	balances := make(map[valueobject.PaymentChannel]decimal.Decimal, 2)
	for _, ch := range valueobject.AllPaymentChannels() {
		balances[ch] = decimal.Zero
	}
	for i := range txs {
		balances[txs[i].Channel] = balances[txs[i].Channel].Add(txs[i].SignedAmount())
	}
	return balances
}
