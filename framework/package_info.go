// Package framework contains the low-level implementation of the UI acceptance-test harness
// that is independent of any particular web application. The base package contains shared
// types such as Logger and StepResult; other components are in the subpackages.
//
// The general model is:
//
// 1. The browser package owns a single browser Session per worker, built from declarative
// configuration, and hands out ElementHandles that re-resolve their locator on every use.
//
// 2. The wait package polls a handle (or any predicate) until a condition such as Visible or
// Clickable holds, a timeout elapses, or a non-ignorable error occurs. The interact package
// builds user-level verbs (click, type, read text) on top of it, so that no action is ever
// taken on an element that has not first satisfied a wait.
//
// 3. The scenario package runs features, scenarios, and steps. Each scenario has its own
// context and logging sink; an after-step hook captures a screenshot when a step fails.
//
// The application-specific code (page objects and step implementations) only composes
// these pieces; it never touches a browser driver directly.
package framework
