// Package domain defines the core business entities of the task service
// and the validation rules they enforce. Entities validate themselves;
// stores and services never persist an entity that fails validation.
package domain
