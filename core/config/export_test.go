package config

// Reset exposes cache invalidation to tests.
var Reset = reset
