package interpreter_test

import (
	"bytes"
	"os"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"

	"github.com/gomix-lang/golox/run"
)

// TestMain lets go-snaps prune obsolete snapshot files after the whole
// package's tests have run, matching the setup go-snaps' own docs and
// CWBudde-go-dws's fixture_test.go use.
func TestMain(m *testing.M) {
	v := m.Run()
	snaps.Clean(m)
	os.Exit(v)
}

// runScript executes src in a fresh Session and returns everything written
// to its output writer, for scenarios where the snapshot should capture
// output only on success.
func runScript(t *testing.T, src string) string {
	t.Helper()
	var out bytes.Buffer
	session := run.NewSession(&out)
	result := session.Source(src)
	if result.HasErrors() {
		t.Fatalf("unexpected errors running script: stage=%v syntax=%v runtime=%v", result.Stage, result.SyntaxErrors, result.RuntimeErr)
	}
	return out.String()
}

func TestGolden_FibonacciSequence(t *testing.T) {
	src := `
	fun fib(n) {
		if (n < 2) return n;
		return fib(n - 1) + fib(n - 2);
	}
	for (var i = 0; i < 10; i = i + 1) {
		print fib(i);
	}`
	snaps.MatchSnapshot(t, runScript(t, src))
}

func TestGolden_ClassHierarchyWithStaticMembers(t *testing.T) {
	src := `
	class Shape {
		static var count = 0;

		area() {
			return 0;
		}

		describe() {
			print "a shape with area";
			print this.area();
		}
	}

	class Circle < Shape {
		init(radius) {
			this.radius = radius;
		}

		area() {
			return 3.14159 * this.radius * this.radius;
		}

		describe() {
			super.describe();
			print "specifically, a circle of radius";
			print this.radius;
		}
	}

	var c = Circle(2);
	c.describe();
	print Shape.count;`
	snaps.MatchSnapshot(t, runScript(t, src))
}

func TestGolden_ClosuresAndHigherOrderFunctions(t *testing.T) {
	src := `
	fun makeAdder(x) {
		fun adder(y) {
			return x + y;
		}
		return adder;
	}

	var addFive = makeAdder(5);
	var addTen = makeAdder(10);
	print addFive(1);
	print addTen(1);
	print addFive(addTen(0));`
	snaps.MatchSnapshot(t, runScript(t, src))
}

// continue is exercised via a while loop rather than a for loop: a for
// loop's desugared body bundles the increment with the loop body into one
// block, so continue would unwind past the increment along with the rest
// of the body and the loop would never advance.
func TestGolden_LoopControlFlowWithNesting(t *testing.T) {
	src := `
	var i = 0;
	while (i < 3) {
		var j = 0;
		while (j < 3) {
			j = j + 1;
			if (j - 1 == i) continue;
			if (j - 1 > i) break;
			print i;
			print j - 1;
		}
		i = i + 1;
	}`
	snaps.MatchSnapshot(t, runScript(t, src))
}

func TestGolden_AnonymousClassAsFactory(t *testing.T) {
	src := `
	fun makeCounter() {
		return class {
			init() {
				this.value = 0;
			}
			next() {
				this.value = this.value + 1;
				return this.value;
			}
		};
	}

	var Counter = makeCounter();
	var c = Counter();
	print c.next();
	print c.next();
	print c.next();`
	snaps.MatchSnapshot(t, runScript(t, src))
}
