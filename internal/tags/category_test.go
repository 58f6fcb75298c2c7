package tags

import "testing"

func TestCategorize(t *testing.T) {
	tests := []struct {
		name     string
		explicit string
		want     Category
	}{
		{"Game X (USA)", "", CategoryGames},
		{"Sound Test (Japan) (Program)", "", CategoryApplications},
		{"Game X (USA) (Demo)", "", CategoryDemos},
		{"Game X (Japan) (Taikenban)", "", CategoryDemos},
		{"Game X (USA) (Beta)", "", CategoryPreproduction},
		{"Game X (USA) (Demo) (Proto)", "", CategoryPreproduction},
		{"Game X (USA) (Demo)", "Bonus Discs", Category("Bonus Discs")},
		{"Demolition Man (USA)", "", CategoryGames},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Categorize(tt.name, tt.explicit); got != tt.want {
				t.Fatalf("Categorize(%q, %q) = %q, want %q", tt.name, tt.explicit, got, tt.want)
			}
		})
	}
}
