// Package assetdb is the asset database the import steps act on.
//
// Asset paths are project relative and use forward slashes, for example
// "Assets/Models/Orc.fbx". Every asset may have a sidecar "<path>.meta" file
// that travels with it on moves and renames. The database is backed by an
// afero filesystem, so tests run against afero.NewMemMapFs.
package assetdb
