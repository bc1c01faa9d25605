package metrics

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/treeguess/sklearn/tree"
)

func loadCharacters(t *testing.T) *tree.Tree {
	t.Helper()
	tr, err := tree.Load("../sklearn/tree/testdata/characters.json")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	return tr
}

func TestConfusion(t *testing.T) {
	tr := loadCharacters(t)

	conf, err := Confusion(tr)
	if err != nil {
		t.Fatalf("Confusion() error = %v", err)
	}

	// Classes: Hinata, Kakashi, Naruto, Sakura, Sasuke.
	want := mat.NewDense(5, 5, []float64{
		5, 0, 0, 0, 0,
		0, 7, 0, 0, 0,
		0, 0, 4, 0, 1,
		1, 0, 0, 6, 0,
		0, 0, 3, 0, 2,
	})
	if !mat.Equal(conf, want) {
		t.Errorf("Confusion() =\n%v\nwant\n%v", mat.Formatted(conf), mat.Formatted(want))
	}
}

func TestAccuracy(t *testing.T) {
	tests := []struct {
		name    string
		conf    mat.Matrix
		want    float64
		wantErr bool
	}{
		{
			name: "Perfect accuracy",
			conf: mat.NewDense(2, 2, []float64{3, 0, 0, 5}),
			want: 1.0,
		},
		{
			name: "80% accuracy",
			conf: mat.NewDense(2, 2, []float64{4, 1, 1, 4}),
			want: 0.8,
		},
		{
			name:    "Not square",
			conf:    mat.NewDense(2, 3, []float64{1, 0, 0, 0, 1, 0}),
			wantErr: true,
		},
		{
			name:    "No samples",
			conf:    mat.NewDense(2, 2, nil),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Accuracy(tt.conf)
			if (err != nil) != tt.wantErr {
				t.Errorf("Accuracy() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Accuracy() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAccuracy_Tree(t *testing.T) {
	conf, err := Confusion(loadCharacters(t))
	if err != nil {
		t.Fatal(err)
	}
	got, err := Accuracy(conf)
	if err != nil {
		t.Fatal(err)
	}
	if want := 24.0 / 29.0; math.Abs(got-want) > 1e-9 {
		t.Errorf("Accuracy() = %v, want %v", got, want)
	}
}

func TestPrecisionRecall(t *testing.T) {
	conf := mat.NewDense(3, 3, []float64{
		4, 1, 0,
		0, 3, 0,
		0, 0, 0,
	})
	precision, recall, err := PrecisionRecall(conf)
	if err != nil {
		t.Fatal(err)
	}

	wantP := []float64{1, 0.75, 0}
	wantR := []float64{0.8, 1, 0}
	for i := range wantP {
		if math.Abs(precision[i]-wantP[i]) > 1e-9 {
			t.Errorf("precision[%d] = %v, want %v", i, precision[i], wantP[i])
		}
		if math.Abs(recall[i]-wantR[i]) > 1e-9 {
			t.Errorf("recall[%d] = %v, want %v", i, recall[i], wantR[i])
		}
	}

	if _, _, err := PrecisionRecall(mat.NewDense(1, 2, nil)); err == nil {
		t.Error("expected an error for a non-square matrix")
	}
}

func TestImpurity(t *testing.T) {
	tests := []struct {
		name        string
		votes       []float64
		wantGini    float64
		wantEntropy float64
	}{
		{"pure", []float64{0, 7, 0}, 0, 0},
		{"even split", []float64{5, 5}, 0.5, 1},
		{"four way", []float64{1, 1, 1, 1}, 0.75, 2},
		{"empty", []float64{0, 0}, 0, 0},
	}
	for _, tt := range tests {
		if got := Gini(tt.votes); math.Abs(got-tt.wantGini) > 1e-12 {
			t.Errorf("%s: Gini() = %v, want %v", tt.name, got, tt.wantGini)
		}
		if got := Entropy(tt.votes); math.Abs(got-tt.wantEntropy) > 1e-12 {
			t.Errorf("%s: Entropy() = %v, want %v", tt.name, got, tt.wantEntropy)
		}
	}
}
