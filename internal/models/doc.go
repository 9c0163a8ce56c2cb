// Package models defines the core domain models for the storefront bot.
//
// # Models
//
//   - SpaceInvoice: the computed bill of materials for one physical space
//     (kitchen, bath, floor area, or flat surface)
//   - LineItem: one priced row of a SpaceInvoice
//   - Session: the accumulated, not-yet-exported spaces of one conversation
//   - Order: a trackable customer order
//   - Offer: an archived promotional image (Telegram file_id)
//
// # Design Principles
//
//  1. SpaceInvoice and LineItem are built once at flow finalization and never
//     mutated afterwards; the session only appends.
//  2. Every model is JSON-serializable so conversation state can round-trip
//     through the key-value store between updates.
//  3. Monetary values are float64 rounded to 2 decimals at line level, matching
//     how totals are presented on the invoice.
package models
