// Package addresstests contains the browser scenarios for the delivery address flow.
//
// Every scenario starts from a freshly loaded delivery page (see T.RunOnPage) and drives it
// through a webdriver.Browser. Nothing waits for a fixed time: each step polls the page until
// the expected condition holds or PAGE_READY_TIMEOUT elapses.
package addresstests
