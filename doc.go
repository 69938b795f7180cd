// Package betboard values a portfolio ledger and prepares its allocation pies.
//
// The core functionalities include:
//   - Ledger loading: full ledgers (asset, ticker, quantity) valued with live
//     prices, and simple ledgers carrying the current amount of each holding.
//   - Valuation: one value per row, with each distinct price resolved once.
//   - Aggregation: distributions of value by asset, category and bucket.
//   - Slice combination: pies where entries below a share of the total are
//     folded into a single "Other" slice.
//
// Prices come from the price package. This package serves as the foundational
// logic for the `bb` command-line tool and its HTTP API.
package betboard
