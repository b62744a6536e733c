// Package quiz provides typed wrappers over the quiz service's protected
// endpoints: quizzes, submissions, and their statistics.
//
// Every call goes through the resilient request path of the parent client —
// credential attachment, expiry renewal, and the single retry all apply
// here without the wrappers knowing about them. The wrappers interpret
// response payloads only; they never touch session state.
package quiz
