package cart

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// CartTestSuite provides a test suite for the Cart aggregate
type CartTestSuite struct {
	suite.Suite
}

func (suite *CartTestSuite) line(ingredient, brand, store string, price int) Line {
	return Line{
		IngredientName: ingredient,
		Brand:          brand,
		UnitPrice:      price,
		PackageWeight:  "1kg",
		Store:          store,
		ImageRef:       "/images/placeholder.jpg",
	}
}

// TestAddLine tests line insertion and merge behavior
func (suite *CartTestSuite) TestAddLine() {
	suite.Run("NewLine_ShouldAppendWithQuantityOne", func() {
		// Arrange
		cart := New()

		// Act
		err := cart.AddLine(suite.line("Basmati Rice", "India Gate", "Amazon", 120))

		// Assert
		require.NoError(suite.T(), err)
		require.Equal(suite.T(), 1, cart.Len())

		lines := cart.Lines()
		assert.Equal(suite.T(), MinQuantity, lines[0].Quantity)
		assert.NotEqual(suite.T(), uuid.Nil, lines[0].ID)

		events := cart.Events()
		require.Len(suite.T(), events, 1)
		added, ok := events[0].(LineAddedEvent)
		assert.True(suite.T(), ok, "Should emit LineAddedEvent")
		assert.Equal(suite.T(), "Basmati Rice", added.IngredientName)
	})

	suite.Run("DuplicateKey_ShouldMergeIntoExistingLine", func() {
		// Arrange
		cart := New()
		require.NoError(suite.T(), cart.AddLine(suite.line("Basmati Rice", "India Gate", "Amazon", 120)))
		cart.ClearEvents()

		// Act
		err := cart.AddLine(suite.line("Basmati Rice", "India Gate", "Amazon", 120))

		// Assert
		require.NoError(suite.T(), err)
		require.Equal(suite.T(), 1, cart.Len(), "Duplicate key must not append a new line")
		assert.Equal(suite.T(), 2, cart.Lines()[0].Quantity)

		events := cart.Events()
		require.Len(suite.T(), events, 1)
		_, ok := events[0].(LineMergedEvent)
		assert.True(suite.T(), ok, "Should emit LineMergedEvent")
	})

	suite.Run("SameIngredientDifferentStore_ShouldStaySeparate", func() {
		// Arrange
		cart := New()
		require.NoError(suite.T(), cart.AddLine(suite.line("Basmati Rice", "India Gate", "Amazon", 120)))

		// Act
		err := cart.AddLine(suite.line("Basmati Rice", "Daawat", "JioMart", 100))

		// Assert
		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), 2, cart.Len())
	})

	suite.Run("InvalidLine_ShouldReturnError", func() {
		cart := New()

		err := cart.AddLine(suite.line("", "India Gate", "Amazon", 120))

		assert.ErrorIs(suite.T(), err, ErrEmptyIngredientName)
		assert.Equal(suite.T(), 0, cart.Len())
	})
}

// TestUpdateQuantity tests quantity replacement and clamping
func (suite *CartTestSuite) TestUpdateQuantity() {
	suite.Run("ValidQuantity_ShouldReplace", func() {
		cart := New()
		require.NoError(suite.T(), cart.AddLine(suite.line("Basmati Rice", "India Gate", "Amazon", 120)))

		err := cart.UpdateQuantity(0, 4)

		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), 4, cart.Lines()[0].Quantity)
	})

	suite.Run("BelowMinimum_ShouldClampToMinimum", func() {
		cart := New()
		require.NoError(suite.T(), cart.AddLine(suite.line("Basmati Rice", "India Gate", "Amazon", 120)))
		require.NoError(suite.T(), cart.UpdateQuantity(0, 3))

		for _, quantity := range []int{0, -1, -100} {
			err := cart.UpdateQuantity(0, quantity)

			require.NoError(suite.T(), err)
			assert.Equal(suite.T(), MinQuantity, cart.Lines()[0].Quantity)
		}
	})

	suite.Run("IndexOutOfRange_ShouldReturnError", func() {
		cart := New()
		require.NoError(suite.T(), cart.AddLine(suite.line("Basmati Rice", "India Gate", "Amazon", 120)))

		assert.ErrorIs(suite.T(), cart.UpdateQuantity(-1, 2), ErrLineIndexOutOfRange)
		assert.ErrorIs(suite.T(), cart.UpdateQuantity(1, 2), ErrLineIndexOutOfRange)
	})
}

// TestRemoveLine tests line removal
func (suite *CartTestSuite) TestRemoveLine() {
	suite.Run("ValidIndex_ShouldRemoveAndPreserveOrder", func() {
		cart := New()
		require.NoError(suite.T(), cart.AddLine(suite.line("Basmati Rice", "India Gate", "Amazon", 120)))
		require.NoError(suite.T(), cart.AddLine(suite.line("Onion", "FarmFresh", "JioMart", 40)))
		require.NoError(suite.T(), cart.AddLine(suite.line("Curd", "Amul", "Amazon", 60)))

		err := cart.RemoveLine(1)

		require.NoError(suite.T(), err)
		require.Equal(suite.T(), 2, cart.Len())
		assert.Equal(suite.T(), "Basmati Rice", cart.Lines()[0].IngredientName)
		assert.Equal(suite.T(), "Curd", cart.Lines()[1].IngredientName)
	})

	suite.Run("IndexOutOfRange_ShouldReturnError", func() {
		cart := New()

		assert.ErrorIs(suite.T(), cart.RemoveLine(0), ErrLineIndexOutOfRange)
	})
}

// TestTotal tests total recomputation
func (suite *CartTestSuite) TestTotal() {
	suite.Run("EmptyCart_ShouldBeZero", func() {
		assert.Equal(suite.T(), 0, New().Total())
	})

	suite.Run("MixedQuantities_ShouldSumSubtotals", func() {
		// Arrange: 120 x 2 + 100 x 1 = 340
		cart := New()
		require.NoError(suite.T(), cart.AddLine(suite.line("Basmati Rice", "India Gate", "Amazon", 120)))
		require.NoError(suite.T(), cart.AddLine(suite.line("Basmati Rice", "India Gate", "Amazon", 120)))
		require.NoError(suite.T(), cart.AddLine(suite.line("Basmati Rice", "Daawat", "JioMart", 100)))

		// Assert
		assert.Equal(suite.T(), 340, cart.Total())
	})

	suite.Run("AfterRemoval_ShouldReflectRemainingLines", func() {
		cart := New()
		require.NoError(suite.T(), cart.AddLine(suite.line("Basmati Rice", "India Gate", "Amazon", 120)))
		require.NoError(suite.T(), cart.AddLine(suite.line("Onion", "FarmFresh", "JioMart", 40)))
		require.NoError(suite.T(), cart.RemoveLine(0))

		assert.Equal(suite.T(), 40, cart.Total())
	})
}

// TestGroupByStore tests the display partition
func (suite *CartTestSuite) TestGroupByStore() {
	suite.Run("ShouldBucketByFirstSeenStoreOrder", func() {
		// Arrange
		cart := New()
		require.NoError(suite.T(), cart.AddLine(suite.line("Basmati Rice", "India Gate", "Amazon", 120)))
		require.NoError(suite.T(), cart.AddLine(suite.line("Onion", "FarmFresh", "JioMart", 40)))
		require.NoError(suite.T(), cart.AddLine(suite.line("Curd", "Amul", "Amazon", 60)))

		// Act
		groups := cart.GroupByStore()

		// Assert
		require.Len(suite.T(), groups, 2)
		assert.Equal(suite.T(), "Amazon", groups[0].Store)
		assert.Equal(suite.T(), "JioMart", groups[1].Store)
		require.Len(suite.T(), groups[0].Lines, 2)
		assert.Equal(suite.T(), "Basmati Rice", groups[0].Lines[0].IngredientName)
		assert.Equal(suite.T(), "Curd", groups[0].Lines[1].IngredientName)
	})

	suite.Run("ShouldBeLossless", func() {
		cart := New()
		require.NoError(suite.T(), cart.AddLine(suite.line("Basmati Rice", "India Gate", "Amazon", 120)))
		require.NoError(suite.T(), cart.AddLine(suite.line("Onion", "FarmFresh", "JioMart", 40)))
		require.NoError(suite.T(), cart.AddLine(suite.line("Curd", "Amul", "Flipkart", 60)))

		groups := cart.GroupByStore()

		var count int
		for _, g := range groups {
			count += len(g.Lines)
		}
		assert.Equal(suite.T(), cart.Len(), count)
	})

	suite.Run("EmptyCart_ShouldReturnNoGroups", func() {
		assert.Empty(suite.T(), New().GroupByStore())
	})
}

// TestSnapshot tests order capture isolation
func (suite *CartTestSuite) TestSnapshot() {
	suite.Run("LaterMutation_ShouldNotReachSnapshot", func() {
		// Arrange
		cart := New()
		require.NoError(suite.T(), cart.AddLine(suite.line("Basmati Rice", "India Gate", "Amazon", 120)))

		// Act
		snapshot := cart.Snapshot()
		require.NoError(suite.T(), cart.UpdateQuantity(0, 9))
		cart.Clear()

		// Assert
		require.Len(suite.T(), snapshot, 1)
		assert.Equal(suite.T(), 1, snapshot[0].Quantity)
		assert.Equal(suite.T(), 0, cart.Len())
	})
}

// TestClear tests emptying the cart
func (suite *CartTestSuite) TestClear() {
	cart := New()
	require.NoError(suite.T(), cart.AddLine(suite.line("Basmati Rice", "India Gate", "Amazon", 120)))
	cart.ClearEvents()

	cart.Clear()

	assert.Equal(suite.T(), 0, cart.Len())
	assert.Equal(suite.T(), 0, cart.Total())

	events := cart.Events()
	require.Len(suite.T(), events, 1)
	cleared, ok := events[0].(ClearedEvent)
	require.True(suite.T(), ok, "Should emit ClearedEvent")
	assert.Equal(suite.T(), 1, cleared.LineCount)
}

// TestCartTestSuite runs the test suite
func TestCartTestSuite(t *testing.T) {
	suite.Run(t, new(CartTestSuite))
}
