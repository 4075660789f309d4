// Package db contains the data-access layer of Stockmaster.
//
// Connection lifecycle
//   - `ConnectionManager` owns the single shared connection. Create one at
//     start-up from `config.Database`, call `GetConnection` whenever a live
//     handle is needed and `CloseConnection` once at shutdown. Reconnection is
//     lazy and mutex-guarded; a stale handle is closed before it is replaced.
//
// DAOs
//   - Every entity has a DAO interface (`SupplierDAO`, `ProductDAO`, ...)
//     built on the shared `DAO[T]` contract. Constructors take a possibly nil
//     `*bun.DB`: a live handle selects the Bun implementation, nil selects the
//     offline implementation that synthesizes records so a UI can run with no
//     database at all. `NewDAOs` builds the whole set at once.
//   - Live failures come back as `*StorageError`; unique violations unwrap to
//     `ErrDuplicate`. Connection failures are `*ConnectionError`. A missing
//     row is `(nil, nil)`, not an error.
//
// Testing notes
//   - Prefer an in-memory SQLite DSN such as
//     `file:<name>?mode=memory&cache=shared` followed by `EnsureSchema` in
//     tests that need real DB semantics.
//   - For fast unit tests that don't need a DB, pass a nil connection and use
//     the offline DAOs.
package db
