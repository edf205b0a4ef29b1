// Package mongodb implements the store interfaces on top of a MongoDB
// deployment. It owns the connection bootstrap, the collection names, and
// the translation from driver errors to the store error taxonomy.
package mongodb
