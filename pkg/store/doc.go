/*
Package store implements the template lifecycle over a persistence
port: CRUD for user-authored templates, favorites, a bounded recents
list, and import/export of the version-1 template envelope.

The service fails soft wherever the surrounding editor must stay
usable: renames and deletes of unknown ids are no-ops, and malformed
import candidates are skipped and counted instead of aborting a batch.
*/
package store
