// Package classifier predicts the conjugation template of verbs that are
// missing from the dictionary.
//
// Words are turned into symbolic features (ending and beginning n-grams,
// length, vowel and consonant counts), vectorized as binary indicators,
// reduced by an L1-regularized linear model and classified by a softmax
// regression trained with stochastic gradient descent. Training is fully
// deterministic for a given seed.
package classifier
