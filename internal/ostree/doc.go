// Package ostree imports commit tarballs into archive-mode OSTree
// repositories by shelling out to the ostree and tar CLIs.
//
// It exposes Repository for inspecting local repository state, Importer for
// idempotent commit materialization, and Plan for batch import manifests.
package ostree
