// Package models lists the models a translation backend offers and sorts
// the ones usable for translation from the rest (speech, image, embedding).
package models
